// Package connector provides key store backends for the key catalog.
package connector
