// Package db persists conversations and messages for the coach service in
// SQLite.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

// Message is one persisted chat message.
type Message struct {
	MsgID   string
	Author  string
	Content string
	TS      int64
}

// ConversationSummary is one row of a user's history list. Title is the
// first user message of the conversation, empty when there is none yet.
type ConversationSummary struct {
	ConvoID   string
	StartedAt int64
	Title     string
}

// Database wraps the SQLite store.
type Database struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*Database, error) {
	conn, err := sql.Open("sqlite", "file:"+path+"?_busy_timeout=10000&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS conversations (
		convo_id   TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		started_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS messages (
		msg_id   TEXT PRIMARY KEY,
		convo_id TEXT NOT NULL,
		author   TEXT NOT NULL CHECK(author IN ('user','assistant')),
		content  TEXT NOT NULL,
		ts       INTEGER NOT NULL,
		FOREIGN KEY(convo_id) REFERENCES conversations(convo_id)
	);
	CREATE INDEX IF NOT EXISTS idx_msgs_convo ON messages(convo_id, ts);`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Database{db: conn}, nil
}

// SaveConversationStart records a new conversation; starting the same
// conversation twice is a no-op.
func (d *Database) SaveConversationStart(convoID, userID string, startedAt int64) error {
	_, err := d.db.Exec(`INSERT OR IGNORE INTO conversations (convo_id, user_id, started_at) VALUES (?,?,?);`,
		convoID, userID, startedAt)
	return err
}

// SaveMessage appends a message to a conversation.
func (d *Database) SaveMessage(convoID string, m Message) error {
	_, err := d.db.Exec(`INSERT INTO messages (msg_id, convo_id, author, content, ts) VALUES (?,?,?,?,?);`,
		m.MsgID, convoID, m.Author, m.Content, m.TS)
	return err
}

// Conversations lists a user's conversations, newest first.
func (d *Database) Conversations(userID string) ([]ConversationSummary, error) {
	rows, err := d.db.Query(`SELECT c.convo_id, c.started_at,
		COALESCE((SELECT content FROM messages m
			WHERE m.convo_id = c.convo_id AND m.author = 'user'
			ORDER BY m.ts ASC LIMIT 1), '')
	FROM conversations c WHERE c.user_id = ? ORDER BY c.started_at DESC;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConversationSummary
	for rows.Next() {
		var c ConversationSummary
		if err := rows.Scan(&c.ConvoID, &c.StartedAt, &c.Title); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Messages returns all messages of a conversation in chronological order.
func (d *Database) Messages(convoID string) ([]Message, error) {
	rows, err := d.db.Query(`SELECT msg_id, author, content, ts FROM messages
		WHERE convo_id = ? ORDER BY ts ASC, msg_id ASC;`, convoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.MsgID, &m.Author, &m.Content, &m.TS); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ConversationOwner returns the user id owning convoID, or "" when the
// conversation does not exist.
func (d *Database) ConversationOwner(convoID string) (string, error) {
	var owner string
	err := d.db.QueryRow(`SELECT user_id FROM conversations WHERE convo_id = ?;`, convoID).Scan(&owner)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return owner, nil
}

// Close releases the underlying database.
func (d *Database) Close() error {
	return d.db.Close()
}
