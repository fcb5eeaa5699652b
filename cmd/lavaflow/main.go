/*
Copyright © 2026 the Lavaflow authors.
This file is part of Lavaflow.

Lavaflow is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Lavaflow is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Lavaflow.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command lavaflow is a command-line interface for the Lavaflow
// channelized lava flow model.
package main

import (
	"os"

	"github.com/spatialmodel/lavaflow/lavaflowutil"
)

func main() {
	if err := lavaflowutil.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
