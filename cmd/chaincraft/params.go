package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-chaincraft/internal/cli"
	"github.com/cwbudde/algo-chaincraft/rig"
)

// ParamsCmd prints the effective parameter set for a morph weight and
// macro vector.
type ParamsCmd struct {
	MacroFlags `embed:""`

	Morph float64 `default:"0" help:"Morph weight between scene A (0) and B (1)."`
	JSON  bool    `name:"json" help:"Print the parameter set as JSON."`
}

// Run prints the table.
func (p *ParamsCmd) Run(g *Globals) error {
	a, b, err := loadScenes(g.Scenes)
	if err != nil {
		return err
	}

	r := rig.Effective(a, b, p.Morph, p.Macros())

	if p.JSON {
		return writeJSON(os.Stdout, r)
	}

	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("morph %.2f  macros %+v", p.Morph, p.Macros().Sanitize().Clamp())))

	return writeParams(os.Stdout, r)
}

func writeParams(w io.Writer, r rig.Rig) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tVALUE\tRANGE")

	for _, f := range rig.Fields() {
		v := f.Get(r)

		val := fmt.Sprintf("%.4g", v)

		switch {
		case f.Path() == "drive.type":
			val = rig.DriveType(v).String()
		case f.Path() == "character.mode":
			val = rig.CharacterMode(v).String()
		case f.Path() == "dynamics.enable":
			val = fmt.Sprint(v != 0)
		}

		fmt.Fprintf(tw, "%s\t%s\t[%g, %g]\n", f.Path(), val, f.Range.Min, f.Range.Max)
	}

	return tw.Flush()
}

func writeJSON(w io.Writer, r rig.Rig) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}
