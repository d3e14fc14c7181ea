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

package srv

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fe-daq/go-feb/pkg/addrtab"
	"github.com/fe-daq/go-feb/pkg/config"
	"github.com/fe-daq/go-feb/pkg/mem"
)

func newTestServer(t *testing.T) *ApiServer {
	t.Helper()
	cfg := config.NewConfigAt(filepath.Join(t.TempDir(), "config"))
	cfg.DBPath = filepath.Join(t.TempDir(), "addrtab.db")
	cfg.Boards = []*config.BoardConfig{{Name: "amc0", Device: "sim"}}

	s, err := NewApiServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	s.configureRouter()

	require.NoError(t, s.store.PutAll("amc0", map[string]addrtab.Entry{
		"FEB.CTRL":     {Address: 0x1000, Permission: "rw", Mask: 0xFFFFFFFF},
		"FEB.CTRL.DAC": {Address: 0x1000, Permission: "rw", Mask: 0x0000FFFF},
		"FEB.STAT.VER": {Address: 0x1004, Permission: "r", Mask: 0xFF000000},
	}))
	return s
}

func (s *ApiServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *ApiServer) simBus(t *testing.T) *mem.SimBus {
	t.Helper()
	bus, err := s.getBus("amc0")
	require.NoError(t, err)
	sim, ok := bus.(*mem.SimBus)
	require.True(t, ok)
	return sim
}

// TestApiMemReadWrite verifies the bare-address endpoints.
func TestApiMemReadWrite(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/mem/w/amc0", &MemHex{Addr: "0x1000", Value: "0xabcd1234"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/mem/r/amc0/0x1000", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var memHex MemHex
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &memHex))
	assert.Equal(t, "0x00001000", memHex.Addr)
	assert.Equal(t, "0xabcd1234", memHex.Value)
}

// TestApiRegReadMasked verifies that the named read applies the mask.
func TestApiRegReadMasked(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.simBus(t).Write(0x1000, 0xABCD1234))

	w := s.do(t, http.MethodGet, "/api/reg/r/amc0/FEB.CTRL.DAC", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var regHex RegHex
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regHex))
	assert.Equal(t, "FEB.CTRL.DAC", regHex.Name)
	assert.Equal(t, "0x00001234", regHex.Value)
}

// TestApiRegReadRaw verifies that the raw read returns the whole word.
func TestApiRegReadRaw(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.simBus(t).Write(0x1000, 0xABCD1234))

	w := s.do(t, http.MethodGet, "/api/reg/raw/r/amc0/FEB.CTRL.DAC", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var regHex RegHex
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regHex))
	assert.Equal(t, "0xabcd1234", regHex.Value)
}

// TestApiRegWriteRMW verifies that the named write preserves bits
// outside the register's mask.
func TestApiRegWriteRMW(t *testing.T) {
	s := newTestServer(t)
	sim := s.simBus(t)
	require.NoError(t, sim.Write(0x1000, 0xABCD1234))

	w := s.do(t, http.MethodPost, "/api/reg/w/amc0", &RegHex{Name: "FEB.CTRL.DAC", Value: "0x5678"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	value, err := sim.Read(0x1000)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xABCD5678), value)
}

// TestApiRegWriteRawOverwrites verifies that the raw write replaces
// the whole word.
func TestApiRegWriteRawOverwrites(t *testing.T) {
	s := newTestServer(t)
	sim := s.simBus(t)
	require.NoError(t, sim.Write(0x1000, 0xABCD1234))

	w := s.do(t, http.MethodPost, "/api/reg/raw/w/amc0", &RegHex{Name: "FEB.CTRL.DAC", Value: "0x5678"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	value, err := sim.Read(0x1000)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x5678), value)
}

// TestApiRegInfo verifies resolution without hardware access.
func TestApiRegInfo(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/reg/info/amc0/FEB.STAT.VER", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var info RegInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "FEB.STAT.VER", info.Name)
	assert.Equal(t, "0x00001004", info.Address)
	assert.Equal(t, "0xff000000", info.Mask)
	assert.Equal(t, "r", info.Permission)
	assert.Equal(t, uint32(8), info.Width)
}

// TestApiNotFound verifies the 404 mapping for unknown names and
// boards.
func TestApiNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/reg/r/amc0/NO.SUCH.REG", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/reg/r/amc9/FEB.CTRL", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/reg/info/amc0/NO.SUCH.REG", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/reg/w/amc0", &RegHex{Name: "NO.SUCH.REG", Value: "0x1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestApiBusFault verifies the 502 mapping when the board bus fails.
func TestApiBusFault(t *testing.T) {
	s := newTestServer(t)
	s.simBus(t).SetFault(0x1000)

	w := s.do(t, http.MethodGet, "/api/reg/r/amc0/FEB.CTRL", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = s.do(t, http.MethodGet, "/api/mem/r/amc0/0x1000", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

// TestApiBadRequest verifies the 400 mapping for undecodable bodies
// and values.
func TestApiBadRequest(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/reg/w/amc0", &RegHex{Name: "FEB.CTRL", Value: "zz"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/mem/w/amc0", &MemHex{Addr: "not-an-addr", Value: "0x1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestApiSwagger verifies that the API document and its viewer are
// served.
func TestApiSwagger(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/swagger.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"swagger": "2.0"`)

	w = s.do(t, http.MethodGet, "/docs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "redoc")
}
