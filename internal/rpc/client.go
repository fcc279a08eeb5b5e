package rpc

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/funvibe/symtab/internal/symbols"
	"github.com/funvibe/symtab/internal/typesystem"
)

// Client calls a symtab.Inspector service.
type Client struct {
	conn   *grpc.ClientConn
	schema *Schema
}

// Dial connects to target without transport security. Extra options are
// appended after the credentials option.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	s, err := LoadSchema()
	if err != nil {
		return nil, err
	}
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, schema: s}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req *dynamic.Message) (*dynamic.Message, error) {
	md := c.schema.Inspector.FindMethodByName(method)
	if md == nil {
		return nil, fmt.Errorf("method %q not found", method)
	}
	resp := dynamic.NewMessage(md.GetOutputType())
	path := "/" + c.schema.Inspector.GetFullyQualifiedName() + "/" + method
	if err := c.conn.Invoke(ctx, path, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Lookup fetches the most recent entry named name. An unknown name yields
// a *typesystem.SymbolNotFoundError.
func (c *Client) Lookup(ctx context.Context, name string) (symbols.Entry, error) {
	md := c.schema.Inspector.FindMethodByName("Lookup")
	req := dynamic.NewMessage(md.GetInputType())
	req.SetFieldByName("name", name)

	resp, err := c.invoke(ctx, "Lookup", req)
	if status.Code(err) == codes.NotFound {
		return symbols.Entry{}, typesystem.NewSymbolNotFoundError(name)
	}
	if err != nil {
		return symbols.Entry{}, fmt.Errorf("RPC failed: %w", err)
	}
	return c.schema.EntryFromMessage(resp)
}

// List fetches the latest entry for every name.
func (c *Client) List(ctx context.Context) (symbols.Entries, error) {
	md := c.schema.Inspector.FindMethodByName("List")
	resp, err := c.invoke(ctx, "List", dynamic.NewMessage(md.GetInputType()))
	if err != nil {
		return nil, fmt.Errorf("RPC failed: %w", err)
	}
	return c.schema.EntriesFromList(resp)
}
