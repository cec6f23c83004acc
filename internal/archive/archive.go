// Package archive keeps a local transcript of committed chat messages, so a
// user can review past exchanges even when the remote history service is
// unreachable. The SQLite database is opened lazily and created on first use;
// if opening or writing fails, the archive degrades to in-memory storage.
package archive

import (
	"database/sql"
	"sync"

	_ "github.com/glebarez/go-sqlite"

	"github.com/pennyplan/coach-go/internal/chat"
	"github.com/pennyplan/coach-go/internal/logger"
)

// Entry is one archived message, keyed by the backend conversation id.
type Entry struct {
	ConvoID string
	Author  chat.Author
	Content string
	TS      int64
}

// Archive mirrors committed messages to local SQLite.
type Archive struct {
	path string

	once    sync.Once
	db      *sql.DB
	initErr error

	mu  sync.Mutex
	mem []Entry // in-memory fallback
}

// New creates an archive backed by the SQLite file at path.
func New(path string) *Archive {
	if path == "" {
		path = "coach-archive.db"
	}
	return &Archive{path: path}
}

func (a *Archive) open() {
	a.db, a.initErr = sql.Open("sqlite", "file:"+a.path+"?_busy_timeout=10000")
	if a.initErr != nil {
		logger.L.Warn("sqlite open failed; using in-memory archive", "path", a.path, "error", a.initErr)
		return
	}
	if _, err := a.db.Exec(`CREATE TABLE IF NOT EXISTS transcript (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		convo_id TEXT NOT NULL,
		author   TEXT NOT NULL,
		content  TEXT NOT NULL,
		ts       INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transcript_convo ON transcript(convo_id, ts);`); err != nil {
		a.initErr = err
		logger.L.Warn("sqlite table creation failed; using in-memory archive", "error", err)
	}
}

// Save appends one entry to the transcript. The in-memory copy is always
// kept so List works even after a write failure.
func (a *Archive) Save(e Entry) {
	a.once.Do(a.open)

	if a.initErr == nil && a.db != nil {
		_, err := a.db.Exec(`INSERT INTO transcript (convo_id, author, content, ts) VALUES (?,?,?,?);`,
			e.ConvoID, string(e.Author), e.Content, e.TS)
		if err != nil {
			logger.L.Error("failed to archive message; falling back to memory", "error", err)
		}
	}

	a.mu.Lock()
	a.mem = append(a.mem, e)
	a.mu.Unlock()
}

// List returns all archived entries of a conversation in chronological order.
func (a *Archive) List(convoID string) []Entry {
	a.once.Do(a.open)

	var out []Entry
	if a.initErr == nil && a.db != nil {
		rows, err := a.db.Query(`SELECT convo_id, author, content, ts FROM transcript
			WHERE convo_id = ? ORDER BY ts ASC, id ASC;`, convoID)
		if err == nil {
			defer rows.Close()
			for rows.Next() {
				var e Entry
				var author string
				if err := rows.Scan(&e.ConvoID, &author, &e.Content, &e.TS); err == nil {
					e.Author = chat.Author(author)
					out = append(out, e)
				}
			}
			return out
		}
		logger.L.Error("archive query failed; falling back to memory", "error", err)
	}

	a.mu.Lock()
	for _, e := range a.mem {
		if e.ConvoID == convoID {
			out = append(out, e)
		}
	}
	a.mu.Unlock()
	return out
}

// Close releases the underlying database, if one was opened.
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
