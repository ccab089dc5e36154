// Package mmap maps input files into memory read-only.
//
// Tables are scanned front to back once, so mappings are advised for
// sequential access where the platform supports it.
package mmap
