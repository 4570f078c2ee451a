//Package cfg reads and checks the YAML configuration of one tabulation run.
package cfg

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bbtab/bbtab"
)

//Compression codecs accepted for the output table.
var compressions = map[string]bool{"": true, "gz": true, "zst": true}

//Cfg holds the parameters of one (system, length) run. It can be obtained
//through New or filled by hand; if filled by hand, call Check before use.
type Cfg struct {
	//System is the name of the simulated system, e.g. villin.
	System string `yaml:"system"`

	//Length labels the trajectory length, e.g. 100ns. Together with System
	//it determines the output file name.
	Length string `yaml:"length"`

	//Traj is the raw coordinate dump written by the trajectory converter.
	Traj string `yaml:"traj"`

	//OutDir is the directory the table is written to. Empty means the
	//current directory.
	OutDir string `yaml:"outdir"`

	//Start is the first frame of the table. Frames are numbered from 1.
	Start int `yaml:"start"`

	//End is the last frame, inclusive. If End = 1000, frame 1000 is part
	//of the table.
	End int `yaml:"end"`

	//Atoms is the backbone selection the converter was asked for. The
	//selection itself happens upstream; this field only documents the run.
	Atoms []string `yaml:"atoms"`

	//Compress is the output codec: empty for a plain table, gz or zst.
	Compress string `yaml:"compress"`

	//Quiet turns off progress logging.
	Quiet bool `yaml:"quiet"`
}

//New opens and decodes the specified configuration file. The file must be a
//YAML file. Fields left out take the usual defaults (Start 1, End 1000,
//Atoms C CA N). New calls Check before returning.
func New(path string) (*Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := &Cfg{Start: 1, End: 1000, Atoms: []string{"C", "CA", "N"}}
	r := bufio.NewReader(f)
	dec := yaml.NewDecoder(r)
	err = dec.Decode(c)
	if err != nil {
		return nil, err
	}

	err = c.Check()
	if err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}

	return c, nil
}

//Check returns an error if a field doesn't meet the requirements.
func (c *Cfg) Check() error {
	if c.System == "" {
		return fmt.Errorf("System must be given")
	}

	if c.Length == "" {
		return fmt.Errorf("Length must be given")
	}

	if c.Traj == "" {
		return fmt.Errorf("Traj must be given")
	}

	if c.Start < 1 {
		return fmt.Errorf("Start must be greater or equal to 1")
	}

	if c.End < c.Start {
		return fmt.Errorf("End cannot be lower than Start")
	}

	if len(c.Atoms) == 0 {
		return fmt.Errorf("Atoms cannot be empty")
	}

	if !compressions[c.Compress] {
		return fmt.Errorf("Compress must be empty, gz or zst")
	}

	return nil
}

//OutPath returns the canonical output path of the run.
func (c *Cfg) OutPath() string {
	dir := c.OutDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, bbtab.OutName(c.System, c.Length, c.Compress))
}

//Pipeline returns the pipeline the configuration describes.
func (c *Cfg) Pipeline() *bbtab.Pipeline {
	p := bbtab.NewPipeline(c.Start, c.End, c.OutPath())
	p.Quiet = c.Quiet
	return p
}
