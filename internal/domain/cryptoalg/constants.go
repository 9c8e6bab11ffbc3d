package cryptoalg

// AlgorithmRSA represents the textbook RSA algorithm
const AlgorithmRSA = "RSA"

// AlgorithmAES represents the AES-CBC symmetric cipher
const AlgorithmAES = "AES"

// KeyTypePrivate represents a private key
const KeyTypePrivate = "private"

// KeyTypePublic represents a public key
const KeyTypePublic = "public"

// PublicExponent is the fixed RSA public exponent e
const PublicExponent = 65537

// MinKeyBits is the smallest modulus size accepted by key generation
const MinKeyBits = 512

// MaxKeyBits is the largest modulus size accepted by key generation
const MaxKeyBits = 8192

// DefaultKeyBits is the modulus size used when none is requested
const DefaultKeyBits = 2048

// AESKeySize128 is the 128-bit AES key size in bytes
const AESKeySize128 = 16

// AESKeySize192 is the 192-bit AES key size in bytes
const AESKeySize192 = 24

// AESKeySize256 is the 256-bit AES key size in bytes
const AESKeySize256 = 32

// AESIVSize is the size of the CBC initialization vector in bytes
const AESIVSize = 16

// PublicKeyFileName is the conventional file name of a stored public key
const PublicKeyFileName = "rsa_public.key"

// PrivateKeyFileName is the conventional file name of a stored private key
const PrivateKeyFileName = "rsa_private.key"

// PublicKeyPEMType labels the PEM block holding the modulus
const PublicKeyPEMType = "RSA PUBLIC KEY"

// PrivateKeyPEMType labels the PEM block holding the private exponent
const PrivateKeyPEMType = "RSA PRIVATE KEY"
