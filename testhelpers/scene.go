package testhelpers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TestOwner is the owner identity written into every scene's config
const TestOwner = "testbox"

// Scene is a disposable repository, optionally wired to a bare remote, that
// a test runs inside. Cleanup is registered on the test automatically.
type Scene struct {
	Dir    string
	Repo   *GitRepo
	Remote *GitRepo
	oldDir string
}

// SceneSetup customizes a scene after the repository is initialized
type SceneSetup func(*Scene) error

// NewScene creates a scene with a single local repository
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()
	return newScene(t, false, setup)
}

// NewSceneWithRemote creates a scene whose repository has a bare local
// remote named origin.
func NewSceneWithRemote(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()
	return newScene(t, true, setup)
}

func newScene(t *testing.T, withRemote bool, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, "repo")

	repo, err := NewGitRepo(repoDir)
	if err != nil {
		t.Fatalf("Failed to create git repo: %v", err)
	}

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	scene := &Scene{
		Dir:    repoDir,
		Repo:   repo,
		oldDir: oldDir,
	}

	if withRemote {
		remoteDir := filepath.Join(tmpDir, "remote.git")
		remote, err := NewBareGitRepo(remoteDir)
		if err != nil {
			t.Fatalf("Failed to create bare remote: %v", err)
		}
		if err := repo.AddRemote("origin", remoteDir); err != nil {
			t.Fatalf("Failed to add remote: %v", err)
		}
		scene.Remote = remote
	}

	if err := os.Chdir(repoDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	if err := scene.writeDefaultConfig(); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})

	return scene
}

// writeDefaultConfig pins the owner so tests don't depend on the hostname
func (s *Scene) writeDefaultConfig() error {
	owner := TestOwner
	cfg := map[string]interface{}{"owner": owner}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.Dir, ".git", ".gitwip_config")
	return os.WriteFile(path, data, 0644)
}

// BasicSceneSetup seeds the scene with a single commit on main
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}
