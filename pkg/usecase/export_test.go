package usecase

// Fingerprint is exported for testing
var Fingerprint = fingerprint

// DeriveTrends is exported for testing
var DeriveTrends = deriveTrends

// DismissedKey is exported for testing
var DismissedKey = dismissedKey
