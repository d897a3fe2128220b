/*
Package csv reads examples from CSV streams and writes them back.

The header or first row of the CSV content holds the attribute names and the
rest of the rows one example each. The column holding the class is renamed to
dataset.ClassKey. Empty cells and the '?' string indicate a missing value.
*/
package csv

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/pkg/errors"
)

/*
Writer is an interface for a destination to which examples
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given examples
	// and will return the actually written number of
	// examples and an error (if not all examples
	// could be written)
	Write([]dataset.Example) (int, error)
	// Count returns the total number of examples written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

/*
Reader holds the configuration for reading examples from CSV.
*/
type Reader struct {
	// ClassColumn is the header of the column holding the class.
	// Defaults to dataset.ClassKey when empty.
	ClassColumn string
	// Features, when given, are used to validate every example read.
	Features []*feature.Feature
	// Unlabelled allows examples without class, for which a class
	// is to be predicted. The class column may then be absent.
	Unlabelled bool
}

type csvWriter struct {
	count      int
	attributes []string
	w          *csv.Writer
}

/*
Read takes an io.Reader for a CSV stream and returns the examples parsed from
it or an error.
*/
func (cr *Reader) Read(reader io.Reader) ([]dataset.Example, error) {
	examples := []dataset.Example{}
	err := cr.ReadBySample(reader, func(_ int, e dataset.Example) (bool, error) {
		examples = append(examples, e)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return examples, nil
}

/*
ReadBySample takes an io.Reader for a CSV stream and a lambda function on an
integer and a dataset.Example that returns a boolean value. It parses the
examples from the reader and for each it calls the lambda function with the
example and its index as parameters. If the lambda function returns true, it
will continue processing the next example, otherwise it will stop. An error is
returned if something goes wrong when reading the stream or parsing an
example.
*/
func (cr *Reader) ReadBySample(reader io.Reader, lambda func(int, dataset.Example) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return errors.Wrap(err, "reading header")
	}
	header, err = cr.parseHeader(header)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "reading body")
		}
		e, err := cr.parseRow(row, header)
		if err != nil {
			return errors.Wrapf(err, "parsing line %d", l)
		}
		ok, err := lambda(l-2, e)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadFile takes a filepath string, opens the file to which the filepath points
to and uses Read to return the examples in it or an error. If the filepath is
empty os.Stdin is read instead.
*/
func (cr *Reader) ReadFile(filepath string) ([]dataset.Example, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, errors.Wrap(err, "opening CSV file")
		}
		defer f.Close()
	}
	examples, err := cr.Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", filepath)
	}
	return examples, nil
}

/*
NewWriter takes an io.Writer and a slice of attribute names and returns a
Writer that will write examples on the io.Writer, with a column for each
attribute followed by one for the class.
*/
func NewWriter(writer io.Writer, attributes []string) (Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, 0, len(attributes)+1)
	record = append(record, attributes...)
	record = append(record, dataset.ClassKey)
	err := w.Write(record)
	if err != nil {
		return nil, errors.Wrap(err, "writing CSV header")
	}
	return &csvWriter{attributes: append([]string(nil), attributes...), w: w}, nil
}

/*
Write takes a writer and a slice of examples and dumps to the writer the
examples in CSV format, with a column for every attribute any of them defines.
It returns an error if something went wrong when writing to the writer.
*/
func Write(writer io.Writer, examples []dataset.Example) error {
	cw, err := NewWriter(writer, dataset.Attributes(examples))
	if err != nil {
		return err
	}
	_, err = cw.Write(examples)
	if err != nil {
		return err
	}
	return cw.Flush()
}

func (cr *Reader) parseHeader(header []string) ([]string, error) {
	classColumn := cr.ClassColumn
	if classColumn == "" {
		classColumn = dataset.ClassKey
	}
	result := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	found := false
	for i, name := range header {
		if name == "" {
			return nil, errors.Newf("parsing header: column %d has no name", i+1)
		}
		if name == classColumn {
			name = dataset.ClassKey
			found = true
		} else if name == dataset.ClassKey {
			return nil, errors.Newf("parsing header: column %s clashes with the class column %s", name, classColumn)
		}
		if seen[name] {
			return nil, errors.Newf("parsing header: duplicated column %s", name)
		}
		seen[name] = true
		result[i] = name
	}
	if !found && !cr.Unlabelled {
		return nil, errors.Newf("parsing header: no class column %s", classColumn)
	}
	return result, nil
}

func (cr *Reader) parseRow(row []string, header []string) (dataset.Example, error) {
	e := make(dataset.Example, len(header))
	for i, name := range header {
		v := row[i]
		if v == "" {
			v = dataset.Missing
		}
		e[name] = v
	}
	if c, ok := e.Class(); cr.Unlabelled {
		if c == dataset.Missing || !ok {
			delete(e, dataset.ClassKey)
		}
	} else if c == dataset.Missing {
		return nil, errors.New("example has no class value")
	}
	if cr.Features != nil {
		if err := cr.validate(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (cr *Reader) validate(e dataset.Example) error {
	if _, ok := e.Class(); ok || !cr.Unlabelled {
		return feature.Validate(e, cr.Features)
	}
	labelled := e.Clone()
	labelled[dataset.ClassKey] = dataset.Missing
	return feature.Validate(labelled, cr.Features)
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(examples []dataset.Example) (int, error) {
	for n, e := range examples {
		if err := cw.writeExample(e); err != nil {
			return n, err
		}
	}
	return len(examples), nil
}

func (cw *csvWriter) writeExample(e dataset.Example) error {
	record := make([]string, 0, len(cw.attributes)+1)
	for _, a := range cw.attributes {
		record = append(record, e.ValueFor(a))
	}
	record = append(record, e.ValueFor(dataset.ClassKey))
	err := cw.w.Write(record)
	if err != nil {
		return errors.Wrapf(err, "writing CSV row for example %d", cw.count+1)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
