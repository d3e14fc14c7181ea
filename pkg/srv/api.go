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

// go-feb API
//
// # RESTful APIs to interact with the go-feb register server
//
// Terms Of Service:
//
// Schemes: http
// Host: localhost:8000
// Version: 1.0.0
// Contact:
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package srv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/fe-daq/go-feb/pkg/addrtab"
	"github.com/fe-daq/go-feb/pkg/config"
	"github.com/fe-daq/go-feb/pkg/log"
	"github.com/fe-daq/go-feb/pkg/mem"
	"github.com/fe-daq/go-feb/pkg/reg"
)

const (
	ApiPort = 8000
)

// RegHex names a register and carries its value as a hexadecimal
// string.
type RegHex struct {
	Name  string `json:"name"`
	Value string `json:"value"` // hexadecimal
}

// MemHex is a bare-address word, both fields hexadecimal.
type MemHex struct {
	Addr  string `json:"addr"`  // hexadecimal
	Value string `json:"value"` // hexadecimal
}

// RegInfo is the resolved address table entry of a register, no
// hardware access involved.
type RegInfo struct {
	Name       string `json:"name"`
	Address    string `json:"address"` // hexadecimal
	Mask       string `json:"mask"`    // hexadecimal
	Permission string `json:"permission,omitempty"`
	Width      uint32 `json:"width"`
}

// ApiServer owns the address table store and one bus per configured
// board for its whole lifetime, they open at startup and close at
// shutdown.
type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	store   *addrtab.Store
	buses   map[string]mem.Device
	swagger *loads.Document
}

func NewApiServer(ctx context.Context, cfg *config.Config) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.IP, ApiPort)

	swagger, err := loads.Analyzed(json.RawMessage(swaggerJSON), "")
	if err != nil {
		return nil, err
	}

	store, err := addrtab.NewStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	buses := make(map[string]mem.Device)
	for _, board := range cfg.Boards {
		device, err := mem.Open(board.Device)
		if err != nil {
			for _, other := range buses {
				other.Close()
			}
			store.Close()
			return nil, err
		}
		log.Info("Opened bus for board %s: %s", board.Name, board.Device)
		buses[board.Name] = device
	}

	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		store:   store,
		buses:   buses,
		swagger: swagger,
	}
	return s, nil
}

// Store exposes the address table store for commands that run in the
// same process, the table loader in particular.
func (s *ApiServer) Store() *addrtab.Store {
	return s.store
}

func (s *ApiServer) getBus(board string) (mem.Device, error) {
	bus, ok := s.buses[board]
	if !ok {
		return nil, config.ErrBoardNotFound{Name: board}
	}
	return bus, nil
}

// Close releases the store and every board bus.
func (s *ApiServer) Close() {
	for name, bus := range s.buses {
		if err := bus.Close(); err != nil {
			log.Warning("Error closing bus for board %s: %s", name, err)
		}
	}
	s.store.Close()
}

// Run serves the API until the server context is canceled or the
// listener fails.
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s port: %d", s.Config.IP, ApiPort)
	s.configureRouter()
	httpServer := &http.Server{
		Handler: handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stderr, s.Router)),
		Addr:    fmt.Sprintf("%s:%d", s.Config.IP, ApiPort),
	}
	g, ctx := errgroup.WithContext(s.Context)
	g.Go(httpServer.ListenAndServe)
	g.Go(func() error {
		<-ctx.Done()
		return httpServer.Shutdown(context.Background())
	})
	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	// swagger:operation GET /reg/r/{board}/{name} readReg
	// ---
	// summary: read register by name, mask applied
	// responses:
	//   "200":
	//     "$ref": "#/responses/okResp"
	//   "404":
	//     "$ref": "#/responses/notFound"
	subRouter.HandleFunc("/reg/r/{board}/{name}", s.handleRegRead()).Methods("GET")
	// swagger:operation POST /reg/w/{board} writeReg
	// ---
	// summary: write register by name, read-modify-write under its mask
	// responses:
	//   "200":
	//     "$ref": "#/responses/okResp"
	//   "404":
	//     "$ref": "#/responses/notFound"
	subRouter.HandleFunc("/reg/w/{board}", s.handleRegWrite()).Methods("POST")
	// swagger:operation GET /reg/raw/r/{board}/{name} readRawReg
	// ---
	// summary: read the full word at a register's address, mask not applied
	// responses:
	//   "200":
	//     "$ref": "#/responses/okResp"
	//   "404":
	//     "$ref": "#/responses/notFound"
	subRouter.HandleFunc("/reg/raw/r/{board}/{name}", s.handleRegReadRaw()).Methods("GET")
	// swagger:operation POST /reg/raw/w/{board} writeRawReg
	// ---
	// summary: overwrite the full word at a register's address
	// responses:
	//   "200":
	//     "$ref": "#/responses/okResp"
	//   "404":
	//     "$ref": "#/responses/notFound"
	subRouter.HandleFunc("/reg/raw/w/{board}", s.handleRegWriteRaw()).Methods("POST")
	// swagger:operation GET /reg/info/{board}/{name} regInfo
	// ---
	// summary: resolve a register without touching the hardware
	// responses:
	//   "200":
	//     "$ref": "#/responses/okResp"
	//   "404":
	//     "$ref": "#/responses/notFound"
	subRouter.HandleFunc("/reg/info/{board}/{name}", s.handleRegInfo()).Methods("GET")
	// swagger:operation GET /mem/r/{board}/{addr} readRawAddress
	// ---
	// summary: read one word at a bare address
	// responses:
	//   "200":
	//     "$ref": "#/responses/okResp"
	//   "502":
	//     "$ref": "#/responses/busFault"
	subRouter.HandleFunc("/mem/r/{board}/{addr:0x[0-9a-f]+}", s.handleMemRead()).Methods("GET")
	// swagger:operation POST /mem/w/{board} writeRawAddress
	// ---
	// summary: write one word at a bare address
	// responses:
	//   "200":
	//     "$ref": "#/responses/okResp"
	//   "502":
	//     "$ref": "#/responses/busFault"
	subRouter.HandleFunc("/mem/w/{board}", s.handleMemWrite()).Methods("POST")
	s.Router.HandleFunc("/swagger.json", s.handleSwagger()).Methods("GET")
	s.Router.Handle("/docs", middleware.Redoc(middleware.RedocOpts{
		BasePath: "/",
		Path:     "docs",
		SpecURL:  "/swagger.json",
		Title:    "go-feb API",
	}, nil))
}

// errText prefers the operation's sink message and falls back to the
// raw error for failures that happen before any register operation ran.
func errText(rsp *reg.Response, err error) string {
	if msg := rsp.Err(); msg != "" {
		return msg
	}
	return err.Error()
}

// statusFromError maps the register access error taxonomy onto HTTP
// status codes: unknown names, tables and boards are the caller's
// problem, undecodable entries are ours, bus faults are the board's.
func statusFromError(err error) int {
	var notFound addrtab.ErrNotFound
	var noTable addrtab.ErrTableNotFound
	var noBoard config.ErrBoardNotFound
	var malformed addrtab.ErrMalformedEntry
	var fault reg.ErrBusFault
	switch {
	case errors.As(err, &notFound), errors.As(err, &noTable), errors.As(err, &noBoard):
		return http.StatusNotFound
	case errors.As(err, &malformed):
		return http.StatusInternalServerError
	case errors.As(err, &fault):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *ApiServer) handleSwagger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(s.swagger.Raw())
	}
}

func (s *ApiServer) handleRegRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling reg read request: board: %s name: %s", vars["board"], vars["name"])

		bus, err := s.getBus(vars["board"])
		if err != nil {
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		rsp := reg.NewResponse()
		var value uint32
		err = s.store.View(vars["board"], func(v addrtab.View) error {
			ctx := reg.NewContext(v, bus, rsp)
			// resolve first so a bad name fails typed, then read with
			// the sentinel contract
			if _, err := reg.GetMask(ctx, vars["name"]); err != nil {
				return err
			}
			value = reg.ReadReg(ctx, vars["name"])
			return nil
		})
		if err != nil {
			http.Error(w, errText(rsp, err), statusFromError(err))
			return
		}
		if rsp.Failed() {
			// resolution succeeded, so this is the bus speaking
			http.Error(w, rsp.Err(), http.StatusBadGateway)
			return
		}

		json.NewEncoder(w).Encode(&RegHex{Name: vars["name"], Value: fmt.Sprintf("0x%08x", value)})
	}
}

func (s *ApiServer) handleRegReadRaw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling raw reg read request: board: %s name: %s", vars["board"], vars["name"])

		bus, err := s.getBus(vars["board"])
		if err != nil {
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		rsp := reg.NewResponse()
		var value uint32
		err = s.store.View(vars["board"], func(v addrtab.View) error {
			var err error
			value, err = reg.ReadRawReg(reg.NewContext(v, bus, rsp), vars["name"])
			return err
		})
		if err != nil {
			http.Error(w, errText(rsp, err), statusFromError(err))
			return
		}

		json.NewEncoder(w).Encode(&RegHex{Name: vars["name"], Value: fmt.Sprintf("0x%08x", value)})
	}
}

func (s *ApiServer) handleRegWrite() http.HandlerFunc {
	return s.handleWrite(reg.WriteReg, "reg write")
}

func (s *ApiServer) handleRegWriteRaw() http.HandlerFunc {
	return s.handleWrite(reg.WriteRawReg, "raw reg write")
}

// handleWrite covers the masked and the raw write endpoint, they only
// differ in the operation issued.
func (s *ApiServer) handleWrite(op func(*reg.Context, string, uint32) error, what string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		regHex := &RegHex{}
		if err := json.NewDecoder(r.Body).Decode(regHex); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling %s request: board: %s name: %s value: %s",
			what, vars["board"], regHex.Name, regHex.Value)

		value, err := strconv.ParseUint(regHex.Value, 0, 32)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		bus, err := s.getBus(vars["board"])
		if err != nil {
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		rsp := reg.NewResponse()
		err = s.store.View(vars["board"], func(v addrtab.View) error {
			return op(reg.NewContext(v, bus, rsp), regHex.Name, uint32(value))
		})
		if err != nil {
			http.Error(w, errText(rsp, err), statusFromError(err))
			return
		}
	}
}

func (s *ApiServer) handleRegInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling reg info request: board: %s name: %s", vars["board"], vars["name"])

		entry, err := s.store.Get(vars["board"], vars["name"])
		if err != nil {
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		json.NewEncoder(w).Encode(&RegInfo{
			Name:       vars["name"],
			Address:    fmt.Sprintf("0x%08x", entry.Address),
			Mask:       fmt.Sprintf("0x%08x", entry.Mask),
			Permission: entry.Permission,
			Width:      reg.NumNonzeroBits(entry.Mask),
		})
	}
}

func (s *ApiServer) handleMemRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling mem read request: board: %s addr: %s", vars["board"], vars["addr"])

		addr, err := strconv.ParseUint(vars["addr"], 0, 32)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		bus, err := s.getBus(vars["board"])
		if err != nil {
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		rsp := reg.NewResponse()
		value, err := reg.ReadRawAddress(bus, uint32(addr), rsp)
		if err != nil {
			http.Error(w, errText(rsp, err), statusFromError(err))
			return
		}

		json.NewEncoder(w).Encode(&MemHex{
			Addr:  fmt.Sprintf("0x%08x", uint32(addr)),
			Value: fmt.Sprintf("0x%08x", value),
		})
	}
}

func (s *ApiServer) handleMemWrite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		memHex := &MemHex{}
		if err := json.NewDecoder(r.Body).Decode(memHex); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling mem write request: board: %s addr: %s value: %s",
			vars["board"], memHex.Addr, memHex.Value)

		addr, err := strconv.ParseUint(memHex.Addr, 0, 32)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		value, err := strconv.ParseUint(memHex.Value, 0, 32)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		bus, err := s.getBus(vars["board"])
		if err != nil {
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		rsp := reg.NewResponse()
		if err := reg.WriteRawAddress(bus, uint32(addr), uint32(value), rsp); err != nil {
			http.Error(w, errText(rsp, err), statusFromError(err))
			return
		}
	}
}
