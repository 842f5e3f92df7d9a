package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrDuplicateKey = errors.New("Duplicate key")
var ErrUnknownCurrency = errors.New("Unknown currency")
var ErrUnknownAccount = errors.New("Unknown account")
var ErrCycleDetected = errors.New("Detected cycle when setting parent")
var ErrReferentialBlock = errors.New("Record is still referenced")
var ErrImbalancedTransaction = errors.New("Transaction does not sum to 0")
var ErrInvalidInput = errors.New("Invalid input")

// ErrCorruptHierarchy reports a parent walk that exceeded the total number of
// stored accounts. That only happens when the stored hierarchy already
// contains a loop, so it is kept distinct from ErrCycleDetected, which
// reports a cycle a caller is about to introduce.
var ErrCorruptHierarchy = errors.New("Account hierarchy is corrupt")
