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

package directory

import (
	"fmt"
	"io"
)

// to control the print routine
type branch int

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

// Print writes an ASCII drawing of the tree to w, right sub-trees above
// their parent and left sub-trees below. It returns the tree height.
func (d *Directory) Print(w io.Writer) int {
	return d.printTree(w, d.root, "", rootBranch)
}

func (d *Directory) printTree(w io.Writer, h handle, prefix string, br branch) int {
	if h == none {
		return 0
	}
	n := &d.nodes[h]

	rd := 0
	if n.right != none {
		t := "       "
		if br == leftBranch {
			t = "|      "
		}
		rd = d.printTree(w, n.right, prefix+t, rightBranch)
	}

	switch br {
	case rootBranch:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case leftBranch:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case rightBranch:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	up := "-"
	if n.parent != none {
		up = d.nodes[n.parent].alias
	}
	fmt.Fprintf(w, "%s → %s ^%s %+d\n", n.alias, n.address, up, d.balanceFactor(h))

	ld := 0
	if n.left != none {
		t := "       "
		if br == rightBranch {
			t = "|      "
		}
		ld = d.printTree(w, n.left, prefix+t, leftBranch)
	}
	return 1 + max(rd, ld)
}
