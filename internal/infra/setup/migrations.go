package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"creative-studio/internal/domain"
)

// MigrateDB 执行数据库迁移。
// users / dashboards / widgets 三张表首次创建时使用自定义 SQL，
// 以便显式声明索引长度和外键；之后交给 AutoMigrate 补充新列和索引。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	tables := []struct {
		name      string
		createSQL string
		model     interface{}
	}{
		{"users", createUsersSQL, &domain.User{}},
		{"dashboards", createDashboardsSQL, &domain.Dashboard{}},
		{"widgets", createWidgetsSQL, &domain.Widget{}},
	}

	for _, t := range tables {
		var count int64
		db.Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?", t.name).Count(&count)

		if count == 0 {
			if err := db.Exec(t.createSQL).Error; err != nil {
				return fmt.Errorf("failed to create %s table: %w", t.name, err)
			}
			logrus.Infof("%s table created successfully", t.name)
		} else {
			// 表已存在，AutoMigrate 负责把缺失的列和索引补齐
			if err := db.AutoMigrate(t.model); err != nil {
				return fmt.Errorf("failed to auto-migrate %s table: %w", t.name, err)
			}
		}
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

const createUsersSQL = `
CREATE TABLE users (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(191) NOT NULL, -- 限制长度以匹配索引
	email VARCHAR(191) NOT NULL,
	password TEXT NOT NULL,
	created_at DATETIME(3),
	updated_at DATETIME(3),
	UNIQUE INDEX idx_username (username),
	UNIQUE INDEX idx_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
`

const createDashboardsSQL = `
CREATE TABLE dashboards (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT UNSIGNED NOT NULL,
	name VARCHAR(191) NOT NULL,
	grid_size INT NOT NULL DEFAULT 40,
	created_at DATETIME(3),
	updated_at DATETIME(3),
	UNIQUE INDEX idx_dashboard_user (user_id), -- 每个用户最多一个画板
	CONSTRAINT fk_dashboards_user FOREIGN KEY (user_id) REFERENCES users (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
`

const createWidgetsSQL = `
CREATE TABLE widgets (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	dashboard_id BIGINT UNSIGNED NOT NULL,
	type VARCHAR(64) NOT NULL,
	name VARCHAR(191),
	x INT NOT NULL DEFAULT 0,
	y INT NOT NULL DEFAULT 0,
	width INT NOT NULL DEFAULT 400,
	height INT NOT NULL DEFAULT 400,
	z_index INT NOT NULL DEFAULT 0,
	data JSON,
	created_at DATETIME(3),
	updated_at DATETIME(3),
	INDEX idx_widget_dashboard (dashboard_id),
	CONSTRAINT fk_widgets_dashboard FOREIGN KEY (dashboard_id) REFERENCES dashboards (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
`
