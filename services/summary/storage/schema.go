package storage

import (
	"context"

	"github.com/xilidan/meeting-summary/pkg/logger"
)

var sqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS transcripts (
		id         TEXT PRIMARY KEY,
		filename   TEXT,
		content    TEXT   NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS prompts (
		id            TEXT PRIMARY KEY,
		transcript_id TEXT   NOT NULL REFERENCES transcripts(id),
		prompt        TEXT   NOT NULL,
		created_at    BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS summaries (
		id            TEXT PRIMARY KEY,
		transcript_id TEXT   NOT NULL REFERENCES transcripts(id),
		prompt_id     TEXT   REFERENCES prompts(id),
		raw_output    TEXT   NOT NULL,
		edited_output TEXT,
		created_at    BIGINT NOT NULL,
		updated_at    BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prompts_transcript_created ON prompts(transcript_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_summaries_transcript ON summaries(transcript_id)`,
}

// MySQL cannot index TEXT keys and has no CREATE INDEX IF NOT EXISTS.
var mysqlSchema = []string{
	"CREATE TABLE IF NOT EXISTS `transcripts` (" +
		"`id` VARCHAR(64) NOT NULL PRIMARY KEY," +
		"`filename` TEXT," +
		"`content` LONGTEXT NOT NULL," +
		"`created_at` BIGINT NOT NULL" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	"CREATE TABLE IF NOT EXISTS `prompts` (" +
		"`id` VARCHAR(64) NOT NULL PRIMARY KEY," +
		"`transcript_id` VARCHAR(64) NOT NULL," +
		"`prompt` LONGTEXT NOT NULL," +
		"`created_at` BIGINT NOT NULL," +
		"INDEX `idx_prompts_transcript_created` (`transcript_id`, `created_at`)," +
		"CONSTRAINT `fk_prompts_transcript` FOREIGN KEY (`transcript_id`) REFERENCES `transcripts`(`id`)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	"CREATE TABLE IF NOT EXISTS `summaries` (" +
		"`id` VARCHAR(64) NOT NULL PRIMARY KEY," +
		"`transcript_id` VARCHAR(64) NOT NULL," +
		"`prompt_id` VARCHAR(64)," +
		"`raw_output` LONGTEXT NOT NULL," +
		"`edited_output` LONGTEXT," +
		"`created_at` BIGINT NOT NULL," +
		"`updated_at` BIGINT NOT NULL," +
		"INDEX `idx_summaries_transcript` (`transcript_id`)," +
		"CONSTRAINT `fk_summaries_transcript` FOREIGN KEY (`transcript_id`) REFERENCES `transcripts`(`id`)," +
		"CONSTRAINT `fk_summaries_prompt` FOREIGN KEY (`prompt_id`) REFERENCES `prompts`(`id`)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
}

// InitSchema creates the tables when absent. Safe to call on every start.
func (s *storage) InitSchema(ctx context.Context) error {
	log := logger.FromContext(ctx)

	stmts := sqlSchema
	if s.dialect == DialectMySQL {
		stmts = mysqlSchema
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			log.Error("failed to apply schema statement", "dialect", s.dialect, "error", err)
			return wrapErr("initialize schema", err)
		}
	}
	log.Debug("schema initialized", "dialect", s.dialect, "statements", len(stmts))

	return nil
}
