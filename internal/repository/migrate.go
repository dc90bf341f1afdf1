package repository

import "database/sql"

// Migrate creates the schema if it does not exist yet. It runs once at
// startup, before the server starts accepting requests, so the table layout
// is never entangled with the model structs.
func Migrate(db *sql.DB) error {
	query := `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    hashed_password VARCHAR(255) NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    owner_id INT NOT NULL REFERENCES users (id),
    title VARCHAR(255) NOT NULL,
    description TEXT,
    status BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(query)
	return err
}

// DropAll removes the schema. Used by tests to leave the database clean.
func DropAll(db *sql.DB) error {
	_, err := db.Exec(`
    DROP TABLE IF EXISTS tasks;
    DROP TABLE IF EXISTS users;
`)
	return err
}
