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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"github.com/fe-daq/go-feb/pkg/config"
	"github.com/fe-daq/go-feb/pkg/srv"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.IP, srv.ApiPort),
	}
}

func (c *ApiClient) regReadUrl(board, name string) string {
	return fmt.Sprintf("%s/reg/r/%s/%s", c.ApiPrefix, board, name)
}

func (c *ApiClient) regWriteUrl(board string) string {
	return fmt.Sprintf("%s/reg/w/%s", c.ApiPrefix, board)
}

func (c *ApiClient) regRawReadUrl(board, name string) string {
	return fmt.Sprintf("%s/reg/raw/r/%s/%s", c.ApiPrefix, board, name)
}

func (c *ApiClient) regRawWriteUrl(board string) string {
	return fmt.Sprintf("%s/reg/raw/w/%s", c.ApiPrefix, board)
}

func (c *ApiClient) regInfoUrl(board, name string) string {
	return fmt.Sprintf("%s/reg/info/%s/%s", c.ApiPrefix, board, name)
}

func (c *ApiClient) memReadUrl(board, addr string) string {
	return fmt.Sprintf("%s/mem/r/%s/%s", c.ApiPrefix, board, addr)
}

func (c *ApiClient) memWriteUrl(board string) string {
	return fmt.Sprintf("%s/mem/w/%s", c.ApiPrefix, board)
}

func (c *ApiClient) get(url string) (*req.Resp, error) {
	r, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	return r, nil
}

func (c *ApiClient) post(url string, body interface{}) error {
	r, err := req.Post(url, req.BodyJSON(body))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// RegRead sends a request to read a register of a board by name,
// mask applied
func (c *ApiClient) RegRead(board, name string) (string, error) {
	r, err := c.get(c.regReadUrl(board, name))
	if err != nil {
		return "", err
	}
	regHex := &srv.RegHex{}
	if err := r.ToJSON(regHex); err != nil {
		return "", err
	}
	return regHex.Value, nil
}

// RegReadRaw sends a request to read the full word at a register's
// address, mask not applied
func (c *ApiClient) RegReadRaw(board, name string) (string, error) {
	r, err := c.get(c.regRawReadUrl(board, name))
	if err != nil {
		return "", err
	}
	regHex := &srv.RegHex{}
	if err := r.ToJSON(regHex); err != nil {
		return "", err
	}
	return regHex.Value, nil
}

// RegWrite sends a request to write a value to a register of a board
// by name, read-modify-write under its mask
func (c *ApiClient) RegWrite(board, name, value string) error {
	return c.post(c.regWriteUrl(board), &srv.RegHex{Name: name, Value: value})
}

// RegWriteRaw sends a request to overwrite the full word at a
// register's address
func (c *ApiClient) RegWriteRaw(board, name, value string) error {
	return c.post(c.regRawWriteUrl(board), &srv.RegHex{Name: name, Value: value})
}

// RegInfo sends a request to resolve a register without touching the
// hardware
func (c *ApiClient) RegInfo(board, name string) (*srv.RegInfo, error) {
	r, err := c.get(c.regInfoUrl(board, name))
	if err != nil {
		return nil, err
	}
	info := &srv.RegInfo{}
	if err := r.ToJSON(info); err != nil {
		return nil, err
	}
	return info, nil
}

// MemRead sends a request to read one word at a bare address
func (c *ApiClient) MemRead(board, addr string) (string, error) {
	r, err := c.get(c.memReadUrl(board, addr))
	if err != nil {
		return "", err
	}
	memHex := &srv.MemHex{}
	if err := r.ToJSON(memHex); err != nil {
		return "", err
	}
	return memHex.Value, nil
}

// MemWrite sends a request to write one word at a bare address
func (c *ApiClient) MemWrite(board, addr, value string) error {
	return c.post(c.memWriteUrl(board), &srv.MemHex{Addr: addr, Value: value})
}
