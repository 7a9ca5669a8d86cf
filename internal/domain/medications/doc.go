// Package medications defines the core entities and contracts for medication
// scheduling, dose logging, reminder expansion and adherence reporting.
package medications
