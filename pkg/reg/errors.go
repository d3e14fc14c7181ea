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

package reg

import (
	"fmt"
)

// ErrBusFault returned when the hardware transaction itself fails.
// Terminal for the operation it happened in, retry is the business of
// the calibration and scan layers above.
type ErrBusFault struct {
	Op   string
	Addr uint32
	Err  error
}

func (e ErrBusFault) Error() string {
	return fmt.Sprintf("Bus %s fault at address 0x%08x: %v", e.Op, e.Addr, e.Err)
}

func (e ErrBusFault) Unwrap() error {
	return e.Err
}
