package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/jokebox/internal/model"
	"github.com/sakif/jokebox/internal/repository"
)

// Compile-time check that *DB satisfies the repository contract.
var _ repository.JokeRepository = (*DB)(nil)

// Append inserts joke and writes the id SQLite assigned back into it.
func (db *DB) Append(ctx context.Context, joke *model.Joke) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO jokes (text, category) VALUES (?, ?)`,
		joke.Text,
		joke.Category,
	)
	if err != nil {
		return fmt.Errorf("sqlite: appending joke: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading joke id: %w", err)
	}
	joke.ID = id
	return nil
}

// List returns every joke ordered by id, which is insertion order.
func (db *DB) List(ctx context.Context) ([]model.Joke, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, text, category FROM jokes ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing jokes: %w", err)
	}
	defer rows.Close()

	var jokes []model.Joke
	for rows.Next() {
		var j model.Joke
		if err := rows.Scan(&j.ID, &j.Text, &j.Category); err != nil {
			return nil, fmt.Errorf("sqlite: scanning joke row: %w", err)
		}
		jokes = append(jokes, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating jokes: %w", err)
	}

	return jokes, nil
}

func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM jokes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting jokes: %w", err)
	}
	return n, nil
}
