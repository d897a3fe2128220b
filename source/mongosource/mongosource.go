/*
Package mongosource reads examples from and writes examples to a MongoDB
collection. Every field of a document but _id is an attribute, the class
field is renamed to dataset.ClassKey and null values are read as
dataset.Missing. Attributes a document does not define are left out of its
example, which the imputer then treats as missing.
*/
package mongosource

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	// DefaultCollection is the collection used when none is given
	DefaultCollection = "examples"

	idField = "_id"
)

/*
Source is a MongoDB collection examples can be read from and written to.
*/
type Source struct {
	session    *mgo.Session
	collection string
}

/*
Dial takes a MongoDB connection URL and a collection name and returns a Source
that works on the collection of the URL's default database or an error if it
fails to connect to it.
*/
func Dial(url, collection string) (*Source, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to MongoDB at %s", url)
	}
	return New(session, collection), nil
}

/*
New takes a MongoDB database session and a collection name and returns a
Source that works on the collection of the session's default database.
*/
func New(session *mgo.Session, collection string) *Source {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Source{session, collection}
}

// Close closes the session of the source
func (s *Source) Close() {
	s.session.Close()
}

/*
Read takes a context and the name of the class field and returns the examples
in the collection or an error. Reading stops with the context's error if it is
done before all documents are read.
*/
func (s *Source) Read(ctx context.Context, classField string) ([]dataset.Example, error) {
	if classField == "" {
		classField = dataset.ClassKey
	}
	var examples []dataset.Example
	var doc bson.M
	iter := s.examplesCollection().Find(nil).Iter()
	defer iter.Close()
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := exampleFromDocument(doc, classField)
		if err != nil {
			return nil, errors.Wrapf(err, "reading document %d", len(examples))
		}
		examples = append(examples, e)
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading collection %s", s.collection)
	}
	return examples, nil
}

/*
Write takes a context and a slice of examples and inserts them into the
collection as documents, leaving missing values out. It returns the number of
examples written or an error.
*/
func (s *Source) Write(ctx context.Context, examples []dataset.Example) (int, error) {
	docs := make([]interface{}, 0, len(examples))
	for _, e := range examples {
		doc, err := documentFromExample(e)
		if err != nil {
			return 0, err
		}
		docs = append(docs, doc)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.examplesCollection().Insert(docs...); err != nil {
		return 0, errors.Wrapf(err, "inserting examples into %s", s.collection)
	}
	return len(examples), nil
}

func (s *Source) examplesCollection() *mgo.Collection {
	return s.session.DB("").C(s.collection)
}

func exampleFromDocument(doc bson.M, classField string) (dataset.Example, error) {
	e := make(dataset.Example, len(doc))
	for k, v := range doc {
		if k == idField {
			continue
		}
		if k == dataset.ClassKey && classField != dataset.ClassKey {
			return nil, errors.Newf("field %s clashes with the class field %s", k, classField)
		}
		value := dataset.Missing
		if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		if k == classField {
			k = dataset.ClassKey
		}
		e[k] = value
	}
	if c, ok := e.Class(); !ok || c == dataset.Missing {
		return nil, errors.Newf("document has no value for class field %s", classField)
	}
	return e, nil
}

func documentFromExample(e dataset.Example) (bson.M, error) {
	doc := make(bson.M, len(e))
	for k, v := range e {
		if k == idField {
			return nil, errors.Newf("invalid attribute name %q: reserved collection field", idField)
		}
		if strings.ContainsAny(k, ".$") {
			return nil, errors.Newf("invalid attribute name %q: contains reserved characters %q or %q", k, ".", "$")
		}
		if v != dataset.Missing {
			doc[k] = v
		}
	}
	return doc, nil
}
