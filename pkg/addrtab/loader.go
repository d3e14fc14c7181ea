/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package addrtab

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fe-daq/go-feb/pkg/log"
)

// xmlNode is one <node> element of an address map document. Addresses
// and masks accept both hex (0x...) and decimal notation.
type xmlNode struct {
	ID         string    `xml:"id,attr"`
	Address    string    `xml:"address,attr"`
	Mask       string    `xml:"mask,attr"`
	Permission string    `xml:"permission,attr"`
	Nodes      []xmlNode `xml:"node"`
}

// ParseAddressMap flattens an address map document into table entries.
// Register names join the node ids with dots, child addresses add to
// the parent base, a missing mask selects the full word. An anonymous
// root node is a plain container and produces no entry of its own.
func ParseAddressMap(r io.Reader) (map[string]Entry, error) {
	var root xmlNode
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, ErrMalformedMap{What: err.Error()}
	}
	entries := make(map[string]Entry)
	if root.ID == "" {
		base, err := parseField(root.Address, 0, "address", "root node")
		if err != nil {
			return nil, err
		}
		for i := range root.Nodes {
			if err := flatten(&root.Nodes[i], "", base, entries); err != nil {
				return nil, err
			}
		}
		return entries, nil
	}
	if err := flatten(&root, "", 0, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func flatten(n *xmlNode, prefix string, base uint32, entries map[string]Entry) error {
	if n.ID == "" {
		return ErrMalformedMap{What: fmt.Sprintf("node without id under %q", prefix)}
	}
	name := n.ID
	if prefix != "" {
		name = prefix + "." + n.ID
	}
	addr, err := parseField(n.Address, base, "address", name)
	if err != nil {
		return err
	}
	mask, err := parseField(n.Mask, 0, "mask", name)
	if err != nil {
		return err
	}
	if n.Mask == "" {
		mask = 0xFFFFFFFF
	}
	if mask == 0 {
		log.Warning("Zero mask for register %s, masked writes will not change it", name)
	}
	if _, dup := entries[name]; dup {
		return ErrMalformedMap{What: fmt.Sprintf("duplicate register name %s", name)}
	}
	entries[name] = Entry{
		Address:    addr,
		Permission: n.Permission,
		Mask:       mask,
	}
	for i := range n.Nodes {
		if err := flatten(&n.Nodes[i], name, addr, entries); err != nil {
			return err
		}
	}
	return nil
}

// parseField parses an optional numeric attribute and offsets it by
// base. An absent attribute keeps the base.
func parseField(s string, base uint32, attr, node string) (uint32, error) {
	if s == "" {
		return base, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, ErrMalformedMap{What: fmt.Sprintf("bad %s %q on node %s", attr, s, node)}
	}
	return base + uint32(v), nil
}

// LoadFile parses the address map at path and replaces the board's
// table with it in a single transaction.
func (s *Store) LoadFile(board, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	entries, err := ParseAddressMap(f)
	if err != nil {
		return 0, err
	}
	if err := s.PutAll(board, entries); err != nil {
		return 0, err
	}
	log.Info("Loaded %d entries into table %s from %s", len(entries), board, path)
	return len(entries), nil
}
