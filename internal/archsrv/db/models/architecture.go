package models

// Architecture is a row of the architectures table.
type Architecture struct {
	ArchID  int32  `db:"arch_id"`
	Name    string `db:"name"`
	Status  bool   `db:"status"` // stored as SMALLINT 1 / 0
	Version string `db:"version"`
	Putch   string `db:"putch"`
}
