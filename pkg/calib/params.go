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

// Package calib holds the calibration parameter sets that scan tooling
// shares through the config file. It carries no sequencing logic, only
// the parameter defaults the front-end expects.
package calib

// ClockRateHz is the front-end reference clock the pulse interval is
// counted in.
const ClockRateHz = 40079000

const (
	CalPulseDurationDefault = 0x1ff
	ScanDacMaxDefault       = 254
	ScanDacStepDefault      = 1
	ScanEventsDefault       = 100
	TTCIntervalDefault      = 250
	TTCDelayDefault         = 40
)

// CalPulseParams describes a calibration pulse request.
type CalPulseParams struct {
	Enable      bool   `json:"enable"`
	IsCurrent   bool   `json:"isCurrent"`
	Duration    uint32 `json:"duration"`
	ExtVoltStep uint32 `json:"extVoltStep"`
	Height      uint32 `json:"height"`
	Phase       uint32 `json:"phase"`
	Polarity    uint32 `json:"polarity"`
	ScaleFactor uint32 `json:"scaleFactor"`
}

func NewCalPulseParams() *CalPulseParams {
	return &CalPulseParams{
		Enable:    false,
		IsCurrent: false,
		Duration:  CalPulseDurationDefault,
	}
}

// ScanParams selects the hardware to scan and the DAC range to sweep.
type ScanParams struct {
	OH         uint32 `json:"oh"`
	VFAT       uint32 `json:"vfat"`
	Chan       uint32 `json:"chan"`
	UseUltra   bool   `json:"useUltra"`
	UseExtTrig bool   `json:"useExtTrig"`
	DacMin     uint32 `json:"dacMin"`
	DacMax     uint32 `json:"dacMax"`
	DacStep    uint32 `json:"dacStep"`
	DacSelect  uint32 `json:"dacSelect"`
	NEvents    uint32 `json:"nevts"`
	WaitTime   uint32 `json:"waitTime"`
	ScanReg    string `json:"scanReg,omitempty"`
}

func NewScanParams() *ScanParams {
	return &ScanParams{
		UseUltra: true,
		DacMax:   ScanDacMaxDefault,
		DacStep:  ScanDacStepDefault,
		NEvents:  ScanEventsDefault,
	}
}

// TTCGenParams configures locally generated TTC signals.
type TTCGenParams struct {
	Enable    bool   `json:"enable"`
	Interval  uint32 `json:"interval"`
	Mode      uint32 `json:"mode"`
	NPulses   uint32 `json:"nPulses"`
	Delay     uint32 `json:"delay"`
	PulseRate uint32 `json:"pulseRate"`
	Type      uint32 `json:"type"`
}

func NewTTCGenParams() *TTCGenParams {
	t := &TTCGenParams{
		Enable:   false,
		Interval: TTCIntervalDefault,
		Delay:    TTCDelayDefault,
	}
	t.CalcRate()
	return t
}

// CalcRate derives the pulse rate in Hz from the configured interval
// and stores it back on the struct. A zero interval means no pulses.
func (t *TTCGenParams) CalcRate() uint32 {
	if t.Interval > 0 {
		t.PulseRate = ClockRateHz / t.Interval
	} else {
		t.PulseRate = 0
	}
	return t.PulseRate
}
