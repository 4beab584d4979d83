// Package store holds the Store aggregate: a connected merchant shop with
// its platform credentials, destination backend credentials and catalog
// sync state. Only one sync may run per store at a time; BeginSync guards
// against concurrent runs.
package store
