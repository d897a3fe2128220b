/*
Package sqlsource reads examples from and writes examples to a table of an
SQL database. SQLite3 databases are opened from a file path and PostgreSQL
databases from a postgres:// or postgresql:// connection URL.

Every column of the table is an attribute, except for the id column, which is
reserved, and the class column, which is renamed to dataset.ClassKey. NULL
values are read as dataset.Missing.
*/
package sqlsource

import (
	"bytes"
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

const (
	/*
		MaxExampleInsertionsPerStatement is the maximum number
		of examples that are allowed to be added with a single
		insert command with the Write method of the source.
		Trying to add more will result in making more insertion commands
	*/
	MaxExampleInsertionsPerStatement = 10

	idColumn = "id"
)

/*
Source is an SQL database examples can be read from and written to.
*/
type Source struct {
	db      *sql.DB
	dialect dialect
}

type dialect struct {
	driver      string
	placeholder func(i int) string
}

var (
	sqlite3Dialect = dialect{"sqlite3", func(int) string { return "?" }}
	pqDialect      = dialect{"postgres", func(i int) string { return "$" + strconv.Itoa(i) }}
)

/*
Open takes a context and either a path to an SQLite3 database file or a
PostgreSQL connection URL and returns a Source that works on the database or
an error if it fails to connect to it.
*/
func Open(ctx context.Context, dsn string) (*Source, error) {
	d := sqlite3Dialect
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		d = pqDialect
	}
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", d.driver)
	}
	if d.driver == sqlite3Dialect.driver {
		// in-memory databases are private to each connection
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connecting to %s database", d.driver)
	}
	return &Source{db, d}, nil
}

// Close closes the database connections of the source
func (s *Source) Close() error {
	return s.db.Close()
}

/*
Read takes a context, a table name and the name of its class column and
returns the examples in the table, in the order the database returns them, or
an error.
*/
func (s *Source) Read(ctx context.Context, table, classColumn string) ([]dataset.Example, error) {
	t, err := columnName(table)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+quote(t))
	if err != nil {
		return nil, errors.Wrapf(err, "querying table %s", table)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "reading columns")
	}
	attributes, err := attributeNames(columns, classColumn)
	if err != nil {
		return nil, err
	}
	var examples []dataset.Example
	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err = rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scanning example %d", len(examples))
		}
		e := make(dataset.Example, len(columns))
		for i, a := range attributes {
			if a == "" {
				continue
			}
			if values[i].Valid {
				e[a] = values[i].String
			} else {
				e[a] = dataset.Missing
			}
		}
		if c, _ := e.Class(); c == dataset.Missing {
			return nil, errors.Newf("example %d has no class value", len(examples))
		}
		examples = append(examples, e)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading table %s", table)
	}
	return examples, nil
}

/*
Write takes a context, a table name and a slice of examples, creates the table
if it does not exist with a text column for every attribute and one for the
class, and inserts the examples into it. Missing values are stored as NULL. It
returns the number of examples written and an error if not all of them could
be written.
*/
func (s *Source) Write(ctx context.Context, table string, examples []dataset.Example) (int, error) {
	t, err := columnName(table)
	if err != nil {
		return 0, err
	}
	columns := append(dataset.Attributes(examples), dataset.ClassKey)
	for _, c := range columns {
		if _, err = columnName(c); err != nil {
			return 0, err
		}
	}
	if err = s.createTable(ctx, t, columns); err != nil {
		return 0, err
	}
	written := 0
	for len(examples) > 0 {
		batch := examples
		if len(batch) > MaxExampleInsertionsPerStatement {
			batch = examples[:MaxExampleInsertionsPerStatement]
		}
		if err = s.insert(ctx, t, columns, batch); err != nil {
			return written, err
		}
		written += len(batch)
		examples = examples[len(batch):]
	}
	return written, nil
}

func (s *Source) createTable(ctx context.Context, table string, columns []string) error {
	var stmt bytes.Buffer
	stmt.WriteString("CREATE TABLE IF NOT EXISTS ")
	stmt.WriteString(quote(table))
	stmt.WriteString("(")
	for i, c := range columns {
		if i > 0 {
			stmt.WriteString(", ")
		}
		stmt.WriteString(quote(c))
		stmt.WriteString(" TEXT")
	}
	stmt.WriteString(")")
	if _, err := s.db.ExecContext(ctx, stmt.String()); err != nil {
		return errors.Wrapf(err, "creating table %s", table)
	}
	return nil
}

func (s *Source) insert(ctx context.Context, table string, columns []string, examples []dataset.Example) error {
	var stmt bytes.Buffer
	stmt.WriteString("INSERT INTO ")
	stmt.WriteString(quote(table))
	stmt.WriteString("(")
	for i, c := range columns {
		if i > 0 {
			stmt.WriteString(", ")
		}
		stmt.WriteString(quote(c))
	}
	stmt.WriteString(") VALUES ")
	args := make([]interface{}, 0, len(columns)*len(examples))
	for i, e := range examples {
		if i > 0 {
			stmt.WriteString(", ")
		}
		stmt.WriteString("(")
		for j, c := range columns {
			if j > 0 {
				stmt.WriteString(", ")
			}
			args = append(args, nullable(e.ValueFor(c)))
			stmt.WriteString(s.dialect.placeholder(len(args)))
		}
		stmt.WriteString(")")
	}
	if _, err := s.db.ExecContext(ctx, stmt.String(), args...); err != nil {
		return errors.Wrapf(err, "inserting examples into %s", table)
	}
	return nil
}

/*
attributeNames takes the columns of a table and the name of its class column
and returns the attribute for each column, an empty string for the columns
that are skipped.
*/
func attributeNames(columns []string, classColumn string) ([]string, error) {
	if classColumn == "" {
		classColumn = dataset.ClassKey
	}
	result := make([]string, len(columns))
	found := false
	for i, c := range columns {
		switch {
		case c == classColumn:
			result[i] = dataset.ClassKey
			found = true
		case c == idColumn:
		case c == dataset.ClassKey:
			return nil, errors.Newf("column %s clashes with the class column %s", c, classColumn)
		default:
			result[i] = c
		}
	}
	if !found {
		return nil, errors.Newf("no class column %s", classColumn)
	}
	return result, nil
}

func columnName(name string) (string, error) {
	if name == idColumn {
		return "", errors.Newf(`'%s' is reserved and cannot be used as attribute name`, name)
	}
	if name == "" || strings.ContainsAny(name, `"`) {
		return "", errors.Newf(`name '%s' is empty or contains invalid character '"'`, name)
	}
	return name, nil
}

func quote(name string) string {
	return `"` + name + `"`
}

func nullable(v string) interface{} {
	if v == dataset.Missing {
		return nil
	}
	return v
}
