package rpc

import (
	"errors"
	"fmt"

	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/funvibe/symtab/internal/symbols"
	"github.com/funvibe/symtab/internal/typesystem"
)

// EntryMessage converts an entry to a symtab.Entry message.
func (s *Schema) EntryMessage(e symbols.Entry) *dynamic.Message {
	ti := dynamic.NewMessage(s.TypeInfo)
	ti.SetFieldByName("type", int32(e.Tag().Code()))

	info := e.TypeInfo()
	switch e.Tag() {
	case typesystem.Int:
		v, _ := info.AsInt()
		ti.SetFieldByName("int_value", v)
	case typesystem.Str:
		v, _ := info.AsStr()
		ti.SetFieldByName("str_value", v)
	case typesystem.Bool:
		v, _ := info.AsBool()
		ti.SetFieldByName("bool_value", v)
	}

	msg := dynamic.NewMessage(s.Entry)
	msg.SetFieldByName("name", e.Name())
	msg.SetFieldByName("type_info", ti)
	return msg
}

// EntryFromMessage converts a symtab.Entry message back to an entry.
// An absent payload under a concrete tag reads as that kind's zero value,
// as proto3 does for scalars.
func (s *Schema) EntryFromMessage(msg *dynamic.Message) (symbols.Entry, error) {
	name, _ := msg.GetFieldByName("name").(string)

	ti, ok := msg.GetFieldByName("type_info").(*dynamic.Message)
	if !ok || ti == nil {
		return symbols.Entry{}, fmt.Errorf("entry %s: missing type_info", name)
	}

	code, _ := ti.GetFieldByName("type").(int32)
	tag, err := typesystem.FromCode(int(code))
	if err != nil {
		return symbols.Entry{}, fmt.Errorf("entry %s: %w", name, err)
	}

	fd, raw := ti.GetOneOfField(s.payload)
	if fd == nil {
		switch tag {
		case typesystem.Int:
			return symbols.NewIntEntry(name, 0), nil
		case typesystem.Str:
			return symbols.NewStrEntry(name, ""), nil
		case typesystem.Bool:
			return symbols.NewBoolEntry(name, false), nil
		}
		return symbols.DeclareEntry(name, tag)
	}

	v, err := payloadValue(fd.GetType(), raw)
	if err != nil {
		return symbols.Entry{}, fmt.Errorf("entry %s: %w", name, err)
	}
	if v.Tag() != tag {
		return symbols.Entry{}, fmt.Errorf("entry %s: %w", name,
			typesystem.NewTypeMismatchError("decode", tag, v.Tag()))
	}
	return symbols.FromValue(name, v), nil
}

func payloadValue(kind descriptorpb.FieldDescriptorProto_Type, raw interface{}) (typesystem.Value, error) {
	switch kind {
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		if v, ok := raw.(int64); ok {
			return typesystem.IntValue(v), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		if v, ok := raw.(string); ok {
			return typesystem.StrValue(v), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		if v, ok := raw.(bool); ok {
			return typesystem.BoolValue(v), nil
		}
	}
	return typesystem.Value{}, fmt.Errorf("unsupported payload %v (%T) for %v", raw, raw, kind)
}

// ListMessage converts entries to a symtab.EntryList message.
func (s *Schema) ListMessage(entries symbols.Entries) *dynamic.Message {
	list := dynamic.NewMessage(s.EntryList)
	for _, e := range entries {
		list.AddRepeatedFieldByName("entries", s.EntryMessage(e))
	}
	return list
}

// EntriesFromList converts a symtab.EntryList message back to entries.
func (s *Schema) EntriesFromList(list *dynamic.Message) (symbols.Entries, error) {
	items, _ := list.GetFieldByName("entries").([]interface{})
	entries := make(symbols.Entries, 0, len(items))
	var errs []error
	for i, item := range items {
		msg, ok := item.(*dynamic.Message)
		if !ok {
			errs = append(errs, fmt.Errorf("entries[%d]: unexpected %T", i, item))
			continue
		}
		e, err := s.EntryFromMessage(msg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return entries, nil
}

// Marshal encodes entries in the protobuf wire format of symtab.EntryList.
func Marshal(entries symbols.Entries) ([]byte, error) {
	s, err := LoadSchema()
	if err != nil {
		return nil, err
	}
	data, err := s.ListMessage(entries).Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a symtab.EntryList produced by Marshal.
func Unmarshal(data []byte) (symbols.Entries, error) {
	s, err := LoadSchema()
	if err != nil {
		return nil, err
	}
	list := dynamic.NewMessage(s.EntryList)
	if err := list.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}
	return s.EntriesFromList(list)
}
