// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"fmt"
	"path/filepath"

	"toil-cli/internal/defaults"
	"toil-cli/internal/fsutil"
	"toil-cli/internal/runtime"
)

// Task names.
const (
	Gitignore    = "gitignore"
	Untar        = "untar"
	Virtualenv   = "virtualenv"
	Pip          = "pip"
	Ruby         = "ruby"
	Gem          = "gem"
	Compass      = "compass"
	Nodejs       = "nodejs"
	Coffeescript = "coffeescript"
)

// Builtin returns the registry of toil's tasks in canonical order.
func Builtin() *Registry {
	return NewRegistry(
		Task{Name: Gitignore, Description: "Write GITIGNORE_TEMPLATE to GITIGNORE_PATH if missing", Run: runGitignore},
		Task{Name: Untar, Description: "Extract UNTAR_ARCHIVES into TMP_BASE", Run: runUntar},
		Task{Name: Virtualenv, Description: "Create a Python virtualenv at VIRTUALENV_HOME", Run: runVirtualenv},
		Task{Name: Pip, Description: "Install PIP_REQUIREMENTS into the virtualenv", After: []string{Virtualenv}, Run: runPip},
		Task{Name: Ruby, Description: "Build Ruby into ENV_ROOT", Run: runRuby},
		Task{Name: Gem, Description: "Update RubyGems", After: []string{Ruby}, Run: runGem},
		Task{Name: Compass, Description: "Install the compass gem", After: []string{Gem}, Run: runCompass},
		Task{Name: Nodejs, Description: "Install Node.js into ENV_ROOT", Run: runNodejs},
		Task{Name: Coffeescript, Description: "Install CoffeeScript with npm", After: []string{Nodejs}, Run: runCoffeescript},
	)
}

func runGitignore(_ context.Context, env *Env) error {
	path, err := env.String(defaults.GitignorePath)
	if err != nil {
		return err
	}
	if fsutil.Exists(path) {
		env.Logger.Info(".gitignore already exists", "path", path)
		return nil
	}
	template, err := env.String(defaults.GitignoreTemplate)
	if err != nil {
		return err
	}
	return env.writeFile(path, template)
}

func runUntar(ctx context.Context, env *Env) error {
	archives, err := env.Strings(defaults.UntarArchives)
	if err != nil {
		return err
	}
	tmp, err := env.tmpPath()
	if err != nil {
		return err
	}
	for _, archive := range archives {
		if err := env.untar(ctx, archive, tmp); err != nil {
			return err
		}
	}
	return nil
}

func runVirtualenv(ctx context.Context, env *Env) error {
	home, err := env.String(defaults.VirtualenvHome)
	if err != nil {
		return err
	}
	if fsutil.Exists(home) {
		env.Logger.Info("virtualenv already exists", "path", home)
		return nil
	}

	link, err := env.String(defaults.VirtualenvDownloadLink)
	if err != nil {
		return err
	}
	base, err := env.String(defaults.VirtualenvArchiveBase)
	if err != nil {
		return err
	}
	version, err := env.String(defaults.VirtualenvVersion)
	if err != nil {
		return err
	}
	owner, err := env.String(defaults.VirtualenvUser)
	if err != nil {
		return err
	}
	tmp, err := env.tmpPath()
	if err != nil {
		return err
	}

	archive := filepath.Join(tmp, "virtualenv.tar.gz")
	if err := env.fetch(ctx, link, archive); err != nil {
		return err
	}
	if err := env.untar(ctx, archive, tmp); err != nil {
		return err
	}
	script := filepath.Join(tmp, base, "virtualenv.py")
	if err := env.run(ctx, runtime.Command{Args: []string{"python", script, home}, User: owner}); err != nil {
		return err
	}
	return env.writeFile(filepath.Join(home, "VERSION"), version)
}

func runPip(ctx context.Context, env *Env) error {
	bin, err := env.String(defaults.PipBin)
	if err != nil {
		return err
	}
	requirements, err := env.String(defaults.PipRequirements)
	if err != nil {
		return err
	}
	user, err := env.String(defaults.PipUser)
	if err != nil {
		return err
	}
	sysPackages, err := env.Bool(defaults.PipSystemPackages)
	if err != nil {
		return err
	}

	args := []string{bin, "install", "-U", "-r", requirements}
	if sysPackages {
		args = append(args, "--system-site-packages")
	}
	return env.run(ctx, runtime.Command{Args: args, User: user})
}

func runRuby(ctx context.Context, env *Env) error {
	rubyBin, err := env.String(defaults.RubyBin)
	if err != nil {
		return err
	}
	if fsutil.Exists(rubyBin) {
		env.Logger.Info("Ruby already installed", "path", rubyBin)
		return nil
	}

	url, err := env.String(defaults.RubyDownloadURL)
	if err != nil {
		return err
	}
	root, err := env.String(defaults.RubyArchiveRoot)
	if err != nil {
		return err
	}
	format, err := env.String(defaults.RubyArchiveFormat)
	if err != nil {
		return err
	}
	envRoot, err := env.String(defaults.EnvRoot)
	if err != nil {
		return err
	}
	tmp, err := env.tmpPath()
	if err != nil {
		return err
	}

	archive := filepath.Join(tmp, "ruby."+format)
	if err := env.fetch(ctx, url, archive); err != nil {
		return err
	}
	if err := env.untar(ctx, archive, tmp); err != nil {
		return err
	}

	src := filepath.Join(tmp, root)
	for _, args := range [][]string{
		{"./configure", "--prefix=" + envRoot},
		{"make"},
		{"make", "install"},
	} {
		if err := env.run(ctx, runtime.Command{Args: args, Dir: src}); err != nil {
			return err
		}
	}
	return nil
}

func runGem(ctx context.Context, env *Env) error {
	gem, err := env.String(defaults.RubyGem)
	if err != nil {
		return err
	}
	return env.run(ctx, runtime.Command{Args: []string{gem, "update", "--system"}})
}

func runCompass(ctx context.Context, env *Env) error {
	rubyBin, err := env.String(defaults.RubyBin)
	if err != nil {
		return err
	}
	if bin := filepath.Join(filepath.Dir(rubyBin), "compass"); fsutil.Exists(bin) {
		env.Logger.Info("compass already installed", "path", bin)
		return nil
	}
	gem, err := env.String(defaults.RubyGem)
	if err != nil {
		return err
	}
	return env.run(ctx, runtime.Command{Args: []string{gem, "install", "compass"}})
}

func runNodejs(ctx context.Context, env *Env) error {
	envRoot, err := env.String(defaults.EnvRoot)
	if err != nil {
		return err
	}
	symlink, err := env.String(defaults.NodejsSymlink)
	if err != nil {
		return err
	}

	env.Script.SetVar("NODEJS_HOME", symlink)
	env.Script.AddPath(filepath.Join(symlink, "bin"))

	base, err := env.String(defaults.NodejsArchiveBase)
	if err != nil {
		return err
	}
	target := filepath.Join(envRoot, base)
	if fsutil.Exists(target) {
		env.Logger.Info("Node.js already installed", "path", target)
		return nil
	}

	url, err := env.String(defaults.NodejsDownloadURL)
	if err != nil {
		return err
	}
	name, err := env.String(defaults.NodejsArchive)
	if err != nil {
		return err
	}
	tmp, err := env.tmpPath()
	if err != nil {
		return err
	}

	archive := filepath.Join(tmp, name)
	if err := env.fetch(ctx, url, archive); err != nil {
		return err
	}
	if err := env.untar(ctx, archive, tmp); err != nil {
		return err
	}
	if err := env.mkdirAll(envRoot); err != nil {
		return err
	}
	// mv copes with TMP_BASE and ENV_ROOT living on different filesystems.
	if err := env.run(ctx, runtime.Command{Args: []string{"mv", filepath.Join(tmp, base), target}}); err != nil {
		return err
	}
	if err := env.symlink(target, symlink); err != nil {
		return fmt.Errorf("failed to link %s: %w", symlink, err)
	}
	return nil
}

func runCoffeescript(ctx context.Context, env *Env) error {
	symlink, err := env.String(defaults.NodejsSymlink)
	if err != nil {
		return err
	}
	npm := filepath.Join(symlink, "bin", "npm")
	return env.run(ctx, runtime.Command{Args: []string{npm, "install", "-g", "coffee-script"}})
}
