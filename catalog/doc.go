// Package catalog defines the built-in response schemas for the Rescuedex
// aggregator API: full and essential tiers for dog and organization records,
// plus the pagination envelope. Schemas are static configuration; NewRegistry
// returns a registry pre-populated with all of them.
package catalog
