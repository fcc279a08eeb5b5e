// Package rpc carries symbol entries over protobuf and gRPC. The message
// and service definitions live in an embedded .proto file that is parsed
// at runtime, so no generated code is needed.
package rpc

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"

	"github.com/funvibe/symtab/internal/config"
)

//go:embed symtab.proto
var protoSource string

// Schema holds the descriptors of the embedded proto file.
type Schema struct {
	File      *desc.FileDescriptor
	Entry     *desc.MessageDescriptor
	TypeInfo  *desc.MessageDescriptor
	EntryList *desc.MessageDescriptor
	Inspector *desc.ServiceDescriptor

	payload *desc.OneOfDescriptor
}

var (
	schemaOnce sync.Once
	schema     *Schema
	schemaErr  error
)

// LoadSchema parses the embedded proto file once and returns its descriptors.
func LoadSchema() (*Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = parseSchema(protoSource)
	})
	return schema, schemaErr
}

func parseSchema(src string) (*Schema, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			config.ProtoFileName: src,
		}),
	}
	fds, err := parser.ParseFiles(config.ProtoFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proto: %w", err)
	}
	fd := fds[0]

	s := &Schema{
		File:      fd,
		Entry:     fd.FindMessage(config.EntryMessageName),
		TypeInfo:  fd.FindMessage("symtab.TypeInfo"),
		EntryList: fd.FindMessage(config.EntryListMessageName),
		Inspector: fd.FindService(config.InspectorServiceName),
	}
	if s.Entry == nil || s.TypeInfo == nil || s.EntryList == nil || s.Inspector == nil {
		return nil, fmt.Errorf("%s: missing message or service definitions", config.ProtoFileName)
	}
	for _, od := range s.TypeInfo.GetOneOfs() {
		if od.GetName() == "payload" {
			s.payload = od
		}
	}
	if s.payload == nil {
		return nil, fmt.Errorf("%s: TypeInfo has no payload oneof", config.ProtoFileName)
	}
	return s, nil
}
