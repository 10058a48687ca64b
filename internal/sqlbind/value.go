// Package sqlbind implements a tagged SQL value union and a multi-statement
// executor over database/sql, grounded on the original wallet's raw
// sqlite3_bind_*/sqlite3_step usage (original_source/wallet.cc) and on the
// database/sql-direct style of OpenBazaar-openbazaar-go/repo/db, which is
// the one repo in the corpus that drives mattn/go-sqlite3 without an ORM.
package sqlbind

// Kind tags which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindText
	KindBlob
)

// Value is a tagged union over the SQL-bindable types this wallet uses.
// Exactly one of the typed fields is meaningful, selected by Kind.
type Value struct {
	Kind    Kind
	Bool    bool
	Integer int64
	Float   float64
	Text    string
	Blob    []byte
}

// NullValue constructs a SQL NULL.
func NullValue() Value { return Value{Kind: KindNull} }

// BoolValue constructs a SQL boolean (stored as 0/1 for sqlite).
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IntegerValue constructs a SQL integer.
func IntegerValue(i int64) Value { return Value{Kind: KindInteger, Integer: i} }

// FloatValue constructs a SQL real.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// TextValue constructs a SQL text value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// BlobValue constructs a SQL blob value.
func BlobValue(b []byte) Value { return Value{Kind: KindBlob, Blob: b} }

// NullInteger constructs a SQL integer, or NULL if present is false —
// the shape needed for Output.secret_id, which is nullable (spec.md §3).
func NullInteger(i int64, present bool) Value {
	if !present {
		return NullValue()
	}
	return IntegerValue(i)
}

// driverValue returns the value in the shape database/sql expects for a
// bound parameter.
func (v Value) driverValue() interface{} {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		if v.Bool {
			return int64(1)
		}
		return int64(0)
	case KindInteger:
		return v.Integer
	case KindFloat:
		return v.Float
	case KindText:
		return v.Text
	case KindBlob:
		return v.Blob
	default:
		return nil
	}
}
