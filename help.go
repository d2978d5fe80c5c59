// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **ipdir %s**

A directory of IPv4 addresses and their aliases, kept in a height-balanced search tree keyed by alias.

Built with Go %s

# 1. Input
* One record per line: '<IPv4 address> <alias>'
* Aliases are at most 10 characters with no uppercase letters
* Rejected lines are written to the error log, which is cleared on every load

# 2. Commands
* **ipdir** or **ipdir run**: interactive directory browser
* **ipdir menu**: the numbered menu (add, look up, update, delete, list, location, error log)
* **ipdir list**: every entry in alias order with height, depth, balance and parent
* **ipdir lookup <alias>**: the address stored for an alias
* **ipdir locate <prefix>**: aliases whose address starts with two octets, e.g. 192.168
* **ipdir tree**: the tree drawn sideways
* **ipdir check**: verify the tree invariants
* **ipdir errors [--remote]**: the error log, locally or from S3
* **ipdir mirror**: upload the error log and every entry to AWS
* **ipdir dashboard**: table and depth chart of the directory
* **ipdir settings**: show and create ~/.ipdir.yaml

# 3. Mirroring
* Set 'mirror.enabled' and 'mirror.bucket' in ~/.ipdir.yaml
* Credentials and region come from the standard AWS environment and shared config

# Please be aware
* Copy to clipboard on Linux or Unix requires 'xclip' or 'xsel' to be installed

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}
