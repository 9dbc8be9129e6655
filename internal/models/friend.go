package models

// Friend is a person who has (or had) an accepted friendship. A row is
// created the first time a person transitions into accepted state and is
// never deleted. Cohort is a free-text grouping label assigned once,
// interactively; empty means not yet classified (NULL in the store).
type Friend struct {
	Person string
	Cohort string
}
