// Package store defines the persistence contracts the SiteVault server
// depends on. Implementations live in subpackages (see store/gorm); any
// engine offering atomic row read/append/update can satisfy them.
//
// Expected conditions (missing rows, invalid drafts) surface as typed
// errors from this package; implementations pass unexpected persistence
// failures through unchanged.
package store
