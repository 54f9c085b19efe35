package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/aundre1/incentedge/pkg/incentive"
)

// LoadProject loads one project record from a YAML or JSON file. The record
// may sit at the top level or under a "project" key.
func LoadProject(path string) (*incentive.Project, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading project file, %s", err)
	}

	var project incentive.Project
	if v.IsSet("project") {
		if err := v.UnmarshalKey("project", &project); err != nil {
			return nil, fmt.Errorf("unable to decode project record, %s", err)
		}
	} else if err := v.Unmarshal(&project); err != nil {
		return nil, fmt.Errorf("unable to decode project record, %s", err)
	}

	if project.ID == "" && project.Name == "" {
		return nil, fmt.Errorf("project file %s has neither id nor name", path)
	}
	return &project, nil
}

// LoadPrograms loads a program catalog from a YAML or JSON file. The catalog
// may be a top-level list or sit under a "programs" key.
func LoadPrograms(path string) ([]incentive.IncentiveProgram, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading programs file, %s", err)
	}

	var programs []incentive.IncentiveProgram
	if err := v.UnmarshalKey("programs", &programs); err != nil {
		return nil, fmt.Errorf("unable to decode program records, %s", err)
	}
	if len(programs) == 0 {
		return nil, fmt.Errorf("programs file %s contains no programs", path)
	}
	return programs, nil
}
