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

// Response is the sink one register operation reports into, shaped
// like the RPC response message the slow-control surface sends back:
// result words and strings by key plus at most one terminal error.
// Successful operations never record an error.
type Response struct {
	words   map[string]uint32
	strings map[string]string
	errMsg  string
	failed  bool
}

func NewResponse() *Response {
	return &Response{
		words:   make(map[string]uint32),
		strings: make(map[string]string),
	}
}

func (r *Response) SetWord(key string, value uint32) {
	r.words[key] = value
}

func (r *Response) Word(key string) (uint32, bool) {
	value, ok := r.words[key]
	return value, ok
}

func (r *Response) SetString(key, value string) {
	r.strings[key] = value
}

func (r *Response) String(key string) (string, bool) {
	value, ok := r.strings[key]
	return value, ok
}

// SetError records the terminal error of the operation. An operation
// fails once, so the first message wins and later calls are dropped.
func (r *Response) SetError(msg string) {
	if r.failed {
		return
	}
	r.failed = true
	r.errMsg = msg
}

func (r *Response) Failed() bool {
	return r.failed
}

// Err returns the recorded error message, empty while the operation
// has not failed.
func (r *Response) Err() string {
	return r.errMsg
}
