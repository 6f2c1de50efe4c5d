package db

import "fmt"

// dialect holds the statements whose syntax differs between MySQL and SQLite.
type dialect struct {
	driver string

	tables []string

	upsertGroup   string
	upsertTrigger string
	seedTrigger   string
}

var mysqlDialect = dialect{
	driver: "mysql",
	tables: []string{
		`CREATE TABLE IF NOT EXISTS boomer_groups (
			group_id BIGINT PRIMARY KEY,
			group_name VARCHAR(255) NULL,
			group_link VARCHAR(255) NULL,
			boomer_counter BIGINT NOT NULL DEFAULT 0,
			cringe_counter BIGINT NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS boomer_triggers (
			trigger_key VARCHAR(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
			group_id BIGINT NOT NULL,
			phrase TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (trigger_key, group_id),
			INDEX idx_group_id (group_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		// keys differing only by accent or case are distinct triggers
		`ALTER TABLE boomer_triggers
			MODIFY trigger_key VARCHAR(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL`,
	},
	upsertGroup: `
		INSERT INTO boomer_groups (group_id, group_name, group_link)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE group_name = VALUES(group_name), group_link = VALUES(group_link)`,
	upsertTrigger: `
		INSERT INTO boomer_triggers (trigger_key, group_id, phrase)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE phrase = VALUES(phrase)`,
	seedTrigger: `INSERT IGNORE INTO boomer_triggers (trigger_key, group_id, phrase) VALUES (?, ?, ?)`,
}

var sqliteDialect = dialect{
	driver: "sqlite",
	tables: []string{
		`CREATE TABLE IF NOT EXISTS boomer_groups (
			group_id INTEGER PRIMARY KEY,
			group_name TEXT NULL,
			group_link TEXT NULL,
			boomer_counter INTEGER NOT NULL DEFAULT 0,
			cringe_counter INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS boomer_triggers (
			trigger_key TEXT NOT NULL,
			group_id INTEGER NOT NULL,
			phrase TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (trigger_key, group_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_triggers_group_id ON boomer_triggers(group_id)`,
	},
	upsertGroup: `
		INSERT INTO boomer_groups (group_id, group_name, group_link)
		VALUES (?, ?, ?)
		ON CONFLICT(group_id) DO UPDATE SET
			group_name = excluded.group_name,
			group_link = excluded.group_link,
			updated_at = CURRENT_TIMESTAMP`,
	upsertTrigger: `
		INSERT INTO boomer_triggers (trigger_key, group_id, phrase)
		VALUES (?, ?, ?)
		ON CONFLICT(trigger_key, group_id) DO UPDATE SET phrase = excluded.phrase`,
	seedTrigger: `INSERT OR IGNORE INTO boomer_triggers (trigger_key, group_id, phrase) VALUES (?, ?, ?)`,
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "mysql":
		return mysqlDialect, nil
	case "sqlite":
		return sqliteDialect, nil
	}
	return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}
