package unreal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ProjectMarker sits at the root of an engine checkout.
const ProjectMarker = "UE4Games.uprojectdirs"

var ErrNoProject = errors.New("no Unreal project found")

type Project struct {
	RootDir   string
	Major     int
	Minor     int
	Patch     int
	VSVersion string
}

func (p *Project) Version() string {
	return fmt.Sprintf("%d.%d.%d", p.Major, p.Minor, p.Patch)
}

type buildVersion struct {
	MajorVersion int
	MinorVersion int
	PatchVersion int
}

// FindDirContaining returns the first of dir and its parents holding name.
func FindDirContaining(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s in %s or its parents", ErrNoProject, name, dir)
		}
		dir = parent
	}
}

// FindProject locates the engine checkout around dir and reads its
// version. vsVersion overrides the Visual Studio version picked from the
// engine version when not empty.
func FindProject(dir, vsVersion string) (*Project, error) {
	root, err := FindDirContaining(dir, ProjectMarker)
	if err != nil {
		return nil, err
	}

	versionFile := filepath.Join(root, "Engine", "Build", "Build.version")
	data, err := os.ReadFile(versionFile)
	if err != nil {
		return nil, err
	}
	var v buildVersion
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", versionFile, err)
	}

	p := &Project{
		RootDir:   root,
		Major:     v.MajorVersion,
		Minor:     v.MinorVersion,
		Patch:     v.PatchVersion,
		VSVersion: vsVersion,
	}
	if p.VSVersion == "" {
		p.VSVersion = "15"
		if p.Minor < 20 {
			p.VSVersion = "14"
		}
	}
	logrus.Debugf("Found UE4 project %s in %s", p.Version(), root)
	return p, nil
}
