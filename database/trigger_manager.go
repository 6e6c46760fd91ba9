package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

// Tables mirrored into the db_changes feed for the change monitor.
var monitoredTables = []string{"tables", "reservation_requests", "invoices"}

// ExecuteTriggers installs the row triggers feeding db_changes. MySQL only;
// the sqlite test database runs without the feed.
func ExecuteTriggers(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		utils.InfoLogger.Printf("Skipping change triggers on %s", db.Dialector.Name())
		return nil
	}

	for _, table := range monitoredTables {
		for _, stmt := range triggerStatements(table) {
			if err := db.Exec(stmt).Error; err != nil {
				utils.ErrorLogger.Printf("Error executing trigger: %v\nStatement: %s", err, stmt)
				continue
			}
		}
	}

	var triggers []struct {
		Trigger string
		Event   string
		Table   string
		Timing  string
	}

	db.Raw(`
        SELECT
            TRIGGER_NAME as trigger_name,
            EVENT_MANIPULATION as event_type,
            EVENT_OBJECT_TABLE as table_name,
            ACTION_TIMING as timing
        FROM information_schema.triggers
        WHERE TRIGGER_SCHEMA = DATABASE()
    `).Scan(&triggers)

	for _, t := range triggers {
		utils.InfoLogger.Printf("Trigger verified: %s (%s %s on %s)",
			t.Trigger, t.Timing, t.Event, t.Table)
	}

	return nil
}

func triggerStatements(table string) []string {
	return []string{
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_after_insert", table),
		fmt.Sprintf(`CREATE TRIGGER %s_after_insert AFTER INSERT ON %s FOR EACH ROW
            INSERT INTO db_changes (table_name, record_id, action_type, changed_at, processed)
            VALUES ('%s', NEW.id, 'INSERT', NOW(), false)`, table, table, table),
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_after_update", table),
		fmt.Sprintf(`CREATE TRIGGER %s_after_update AFTER UPDATE ON %s FOR EACH ROW
            INSERT INTO db_changes (table_name, record_id, action_type, changed_at, processed)
            VALUES ('%s', NEW.id, 'UPDATE', NOW(), false)`, table, table, table),
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_after_delete", table),
		fmt.Sprintf(`CREATE TRIGGER %s_after_delete AFTER DELETE ON %s FOR EACH ROW
            INSERT INTO db_changes (table_name, record_id, action_type, changed_at, processed)
            VALUES ('%s', OLD.id, 'DELETE', NOW(), false)`, table, table, table),
	}
}
