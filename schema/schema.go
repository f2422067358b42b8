// Package schema defines a minimal contract-schema data model and its
// content-addressed identification. A schema is identified by the tagged hash
// of its strict encoding, so two schemas with the same identifier are
// byte-identical under the canonical codec. SchemaID is a standalone
// commitment over the whole serialized schema; there is no embedding step.
package schema

import (
	"encoding/hex"
	"io"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/diop/go-lnpbp/commitverify"
	"github.com/diop/go-lnpbp/strictencoding"
)

// TagSchemaID is the domain-separation tag of the schema identifier hash.
var TagSchemaID = []byte("LNPBP:schema")

// DataFormat describes the primitive type of a metadata field.
type DataFormat uint8

// Known data formats. The enum is u8-encoded; decoding any other value fails.
const (
	FormatUnsigned DataFormat = iota
	FormatInteger
	FormatFloat
	FormatString
	FormatBytes

	maxDataFormat = FormatBytes
)

// StateFormat describes how the state bound to an assignment type is encoded.
type StateFormat uint8

// Known state formats.
const (
	StateDeclarative StateFormat = iota
	StateAmount
	StateData

	maxStateFormat = StateData
)

// TransitionSchema describes one state-transition type: which metadata fields
// it may carry and which assignment types it closes and defines.
type TransitionSchema struct {
	Metadata []uint16
	Closes   []uint16
	Defines  []uint16
}

// Schema is the full schema value: type tables keyed by 16-bit type ids.
// Maps are encoded in ascending key order so the encoding, and therefore the
// schema identifier, is canonical.
type Schema struct {
	FieldTypes      map[uint16]DataFormat
	AssignmentTypes map[uint16]StateFormat
	TransitionTypes map[uint16]TransitionSchema
}

// SchemaID is the tagged content hash identifying a schema.
type SchemaID [chainhash.HashSize]byte

// Equal reports whether two identifiers are the same.
func (id SchemaID) Equal(other SchemaID) bool {
	return id == other
}

// String returns the identifier in hex.
func (id SchemaID) String() string {
	return hex.EncodeToString(id[:])
}

// SchemaID serializes the schema with the strict codec and hashes the result
// under TagSchemaID. Serialization fails only when a type table exceeds the
// codec's collection bound.
func (s *Schema) SchemaID() (SchemaID, error) {
	serialized, err := strictencoding.Serialize(s)
	if err != nil {
		return SchemaID{}, err
	}
	return SchemaID(*chainhash.TaggedHash(TagSchemaID, serialized)), nil
}

// RevealVerify reports whether the identifier commits to the given schema.
// Any serialization failure during recomputation yields false.
func (id SchemaID) RevealVerify(s *Schema) bool {
	return commitverify.StandaloneRevealVerify(func(s *Schema) SchemaID {
		recomputed, err := s.SchemaID()
		if err != nil {
			return SchemaID{}
		}
		return recomputed
	}, id, s)
}

func sortedKeys[V any](m map[uint16]V) []uint16 {
	keys := make([]uint16, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func encodeTypeList(w io.Writer, list []uint16) error {
	if err := strictencoding.PutCollectionLength(w, len(list)); err != nil {
		return err
	}
	for _, item := range list {
		if err := strictencoding.PutUint16(w, item); err != nil {
			return err
		}
	}
	return nil
}

func decodeTypeList(r io.Reader) ([]uint16, error) {
	length, err := strictencoding.CollectionLength(r)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	list := make([]uint16, length)
	for i := range list {
		if list[i], err = strictencoding.Uint16(r); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// StrictEncode implements strictencoding.Encoder.
func (s *Schema) StrictEncode(w io.Writer) error {
	if err := strictencoding.PutCollectionLength(w, len(s.FieldTypes)); err != nil {
		return err
	}
	for _, fieldType := range sortedKeys(s.FieldTypes) {
		if err := strictencoding.PutUint16(w, fieldType); err != nil {
			return err
		}
		if err := strictencoding.PutEnum(w, uint8(s.FieldTypes[fieldType])); err != nil {
			return err
		}
	}

	if err := strictencoding.PutCollectionLength(w, len(s.AssignmentTypes)); err != nil {
		return err
	}
	for _, assignmentType := range sortedKeys(s.AssignmentTypes) {
		if err := strictencoding.PutUint16(w, assignmentType); err != nil {
			return err
		}
		if err := strictencoding.PutEnum(w, uint8(s.AssignmentTypes[assignmentType])); err != nil {
			return err
		}
	}

	if err := strictencoding.PutCollectionLength(w, len(s.TransitionTypes)); err != nil {
		return err
	}
	for _, transitionType := range sortedKeys(s.TransitionTypes) {
		if err := strictencoding.PutUint16(w, transitionType); err != nil {
			return err
		}
		transition := s.TransitionTypes[transitionType]
		if err := encodeTypeList(w, transition.Metadata); err != nil {
			return err
		}
		if err := encodeTypeList(w, transition.Closes); err != nil {
			return err
		}
		if err := encodeTypeList(w, transition.Defines); err != nil {
			return err
		}
	}
	return nil
}

// StrictDecode implements strictencoding.Decoder.
func (s *Schema) StrictDecode(r io.Reader) error {
	fieldCount, err := strictencoding.CollectionLength(r)
	if err != nil {
		return err
	}
	s.FieldTypes = make(map[uint16]DataFormat, fieldCount)
	for i := 0; i < fieldCount; i++ {
		fieldType, err := strictencoding.Uint16(r)
		if err != nil {
			return err
		}
		format, err := strictencoding.Enum(r, uint8(maxDataFormat), "DataFormat")
		if err != nil {
			return err
		}
		s.FieldTypes[fieldType] = DataFormat(format)
	}

	assignmentCount, err := strictencoding.CollectionLength(r)
	if err != nil {
		return err
	}
	s.AssignmentTypes = make(map[uint16]StateFormat, assignmentCount)
	for i := 0; i < assignmentCount; i++ {
		assignmentType, err := strictencoding.Uint16(r)
		if err != nil {
			return err
		}
		format, err := strictencoding.Enum(r, uint8(maxStateFormat), "StateFormat")
		if err != nil {
			return err
		}
		s.AssignmentTypes[assignmentType] = StateFormat(format)
	}

	transitionCount, err := strictencoding.CollectionLength(r)
	if err != nil {
		return err
	}
	s.TransitionTypes = make(map[uint16]TransitionSchema, transitionCount)
	for i := 0; i < transitionCount; i++ {
		transitionType, err := strictencoding.Uint16(r)
		if err != nil {
			return err
		}
		var transition TransitionSchema
		if transition.Metadata, err = decodeTypeList(r); err != nil {
			return err
		}
		if transition.Closes, err = decodeTypeList(r); err != nil {
			return err
		}
		if transition.Defines, err = decodeTypeList(r); err != nil {
			return err
		}
		s.TransitionTypes[transitionType] = transition
	}
	return nil
}
