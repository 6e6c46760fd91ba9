package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

// NextID computes the next sequential id for a collection by reading every
// existing key and returning max+1 (1 on an empty collection, gaps are not
// reused).
//
// This is a read-then-write pattern with no mutual exclusion: two callers
// can both observe the same max and collide on the insert. Creations that
// must not collide go through NextIDTx instead; the rest keep the original
// behavior on purpose.
func NextID(db *gorm.DB, model interface{}) (uint, error) {
	var ids []uint
	if err := db.Model(model).Pluck("id", &ids).Error; err != nil {
		return 0, &utils.ExternalServiceError{Err: err}
	}

	var max uint
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}

// NextIDTx is the hardened form: run inside the caller's transaction it
// locks the scanned rows (SELECT ... FOR UPDATE) so two concurrent
// checkouts serialize on the allocation instead of double-issuing an id.
// The non-concurrent contract is identical to NextID.
func NextIDTx(tx *gorm.DB, model interface{}) (uint, error) {
	scan := tx.Model(model)
	if tx.Dialector.Name() == "mysql" {
		// sqlite has no FOR UPDATE; its single-writer model covers us there
		scan = scan.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ids []uint
	if err := scan.Pluck("id", &ids).Error; err != nil {
		return 0, &utils.ExternalServiceError{Err: err}
	}

	var max uint
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}
