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

package mem

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/gopacket"

	"github.com/fe-daq/go-feb/pkg/layers"
	"github.com/fe-daq/go-feb/pkg/log"
)

const DefaultLinkTimeout = 2 * time.Second

// Link is a synchronous FLink register bus over UDP. One request is in
// flight at a time and is matched to its response by sequence number,
// stale or foreign frames are dropped.
type Link struct {
	mu      sync.Mutex
	conn    *net.UDPConn
	seq     uint16
	timeout time.Duration
}

func NewLink(hostport string) (*Link, error) {
	raddr, err := net.ResolveUDPAddr("udp", hostport)
	if err != nil {
		return nil, fmt.Errorf("mem: could not resolve board address %s: %w", hostport, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("mem: could not dial board %s: %w", hostport, err)
	}
	return &Link{
		conn:    conn,
		timeout: DefaultLinkTimeout,
	}, nil
}

// SetTimeout overrides the per-transaction deadline.
func (l *Link) SetTimeout(timeout time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timeout = timeout
}

func (l *Link) Read(addr uint32) (uint32, error) {
	resp, err := l.transact(&layers.BusOp{Read: true, Addr: addr})
	if err != nil {
		return 0, err
	}
	return resp.Value, nil
}

func (l *Link) Write(addr uint32, value uint32) error {
	_, err := l.transact(&layers.BusOp{Read: false, Addr: addr, Value: value})
	return err
}

func (l *Link) Close() error {
	return l.conn.Close()
}

// transact sends one bus request and blocks until the matching
// response arrives or the deadline passes. The board answers every
// request exactly once, so anything with another sequence number is a
// leftover of an earlier timed-out transaction and is dropped.
func (l *Link) transact(op *layers.BusOp) (*layers.BusOp, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	seq := l.seq

	frame, err := layers.BusOpToBytes(op, seq, layers.FLinkTypeBusRequest)
	if err != nil {
		return nil, err
	}
	if err := l.conn.SetDeadline(time.Now().Add(l.timeout)); err != nil {
		return nil, err
	}
	if _, err := l.conn.Write(frame); err != nil {
		return nil, fmt.Errorf("mem: could not send bus request: %w", err)
	}

	buf := make([]byte, layers.FLinkMaxFrameSize)
	for {
		n, err := l.conn.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("mem: no bus response for address 0x%08x: %w", op.Addr, err)
		}
		packet := gopacket.NewPacket(buf[:n], layers.FLinkLayerType, gopacket.Default)
		flLayer := packet.Layer(layers.FLinkLayerType)
		if flLayer == nil {
			log.Debug("Dropping %d byte frame that does not decode as FLink", n)
			continue
		}
		fl := flLayer.(*layers.FLinkLayer)
		if fl.Type != layers.FLinkTypeBusResponse || fl.Seq != seq {
			log.Debug("Dropping FLink frame type 0x%04x seq %d, waiting for seq %d", uint16(fl.Type), fl.Seq, seq)
			continue
		}
		busLayer := packet.Layer(layers.BusLayerType)
		if busLayer == nil {
			return nil, errors.New("FLink response carries no bus operation")
		}
		resp := busLayer.(*layers.BusLayer)
		if resp.Status != layers.BusStatusOK {
			return nil, ErrLinkFault{Addr: op.Addr, Status: resp.Status}
		}
		return resp.BusOp, nil
	}
}
