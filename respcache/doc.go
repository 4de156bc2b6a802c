// Package respcache caches raw API response bodies between checks.
//
// A smoke run often validates the same endpoint against both the full and
// the essential schema tier; the cache lets the second check reuse the body
// the first one fetched. The Redis implementation suits runs spread across
// parallel CI workers sharing one Redis instance.
package respcache
