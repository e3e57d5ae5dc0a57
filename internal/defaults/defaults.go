// SPDX-License-Identifier: MPL-2.0

package defaults

import (
	"fmt"
	"os"
	"path/filepath"

	"toil-cli/pkg/settings"

	"github.com/google/uuid"
)

// Name is the definition name reported in diagnostics.
const Name = "defaults"

// Setting names read by the provisioner and tasks.
const (
	Tasks                  = "TASKS"
	ProjectRoot            = "PROJECT_ROOT"
	TmpBase                = "TMP_BASE"
	EnvRel                 = "ENV_REL"
	EnvRoot                = "ENV_ROOT"
	GitignorePath          = "GITIGNORE_PATH"
	GitignorePython        = "GITIGNORE_PYTHON"
	GitignoreTemplate      = "GITIGNORE_TEMPLATE"
	UntarArchives          = "UNTAR_ARCHIVES"
	VirtualenvVersion      = "VIRTUALENV_VERSION"
	VirtualenvDownloadLink = "VIRTUALENV_DOWNLOAD_LINK"
	VirtualenvArchiveBase  = "VIRTUALENV_ARCHIVE_BASE"
	VirtualenvHome         = "VIRTUALENV_HOME"
	VirtualenvUser         = "VIRTUALENV_USER"
	PipBin                 = "PIP_BIN"
	PipRequirements        = "PIP_REQUIREMENTS"
	PipUser                = "PIP_USER"
	PipSystemPackages      = "PIP_SYSTEM_PACKAGES"
	RubyVersion            = "RUBY_VERSION"
	RubySeries             = "RUBY_SERIES"
	RubyBin                = "RUBY_BIN"
	RubyGem                = "RUBY_GEM"
	RubyArchiveRoot        = "RUBY_ARCHIVE_ROOT"
	RubyArchiveFormat      = "RUBY_ARCHIVE_FORMAT"
	RubyDownloadURL        = "RUBY_DOWNLOAD_URL"
	NodejsVersion          = "NODEJS_VERSION"
	NodejsPlatform         = "NODEJS_PLATFORM"
	NodejsArchiveBase      = "NODEJS_ARCHIVE_BASE"
	NodejsArchive          = "NODEJS_ARCHIVE"
	NodejsDownloadURL      = "NODEJS_DOWNLOAD_URL"
	NodejsSymlink          = "NODEJS_SYMLINK"
	ActivateScript         = "ACTIVATE_SCRIPT"
)

// gitignoreTemplate is written verbatim after interpolation, so the env
// directory entry follows ENV_REL.
const gitignoreTemplate = `.gitignore-local

*.py[odc]
dist/

*.tar.gz
*.gz
*.zip

build/
${ENV_REL}/
`

// New returns the defaults for the current working directory with a fresh
// TMP_BASE.
func New() (*settings.Definition, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return Build(wd, NewTempBase()), nil
}

// NewTempBase returns a unique, not yet created, directory under the OS
// temp dir.
func NewTempBase() string {
	return filepath.Join(os.TempDir(), "toil-"+uuid.NewString())
}

// Build returns the defaults for projectRoot using tmpBase as TMP_BASE.
// Every derived path resolves within the default depth budget.
func Build(projectRoot, tmpBase string) *settings.Definition {
	def := settings.NewDefinition(Name, nil)
	def.
		Set(ProjectRoot, settings.String(projectRoot)).
		Set(TmpBase, settings.String(tmpBase)).
		Set(EnvRel, settings.String("env")).
		Set(EnvRoot, settings.String("$PROJECT_ROOT/$ENV_REL")).
		Set(GitignorePath, settings.String("${PROJECT_ROOT}/.gitignore")).
		Set(GitignorePython, settings.Strings("*.py[odc]", "dist/", "*.egg-info/")).
		Set(GitignoreTemplate, settings.String(gitignoreTemplate)).
		Set(UntarArchives, settings.Sequence()).
		Set(VirtualenvVersion, settings.String("1.11.4")).
		Set(VirtualenvDownloadLink, settings.String(
			"https://pypi.python.org/packages/source/v/virtualenv/virtualenv-${VIRTUALENV_VERSION}.tar.gz")).
		Set(VirtualenvArchiveBase, settings.String("virtualenv-${VIRTUALENV_VERSION}")).
		Set(VirtualenvHome, settings.String("${ENV_ROOT}/venv")).
		Set(VirtualenvUser, settings.String("")).
		Set(PipBin, settings.String("${VIRTUALENV_HOME}/bin/pip")).
		Set(PipRequirements, settings.String("${PROJECT_ROOT}/test-requirements.txt")).
		Set(PipUser, settings.String("")).
		Set(PipSystemPackages, settings.Opaque(false)).
		Set(RubyVersion, settings.String("2.1.1")).
		Set(RubySeries, settings.String("2.1")).
		Set(RubyBin, settings.String("${ENV_ROOT}/bin/ruby")).
		Set(RubyGem, settings.String("${ENV_ROOT}/bin/gem")).
		Set(RubyArchiveRoot, settings.String("ruby-${RUBY_VERSION}")).
		Set(RubyArchiveFormat, settings.String("tar.gz")).
		Set(RubyDownloadURL, settings.String(
			"http://cache.ruby-lang.org/pub/ruby/${RUBY_SERIES}/${RUBY_ARCHIVE_ROOT}.${RUBY_ARCHIVE_FORMAT}")).
		Set(NodejsVersion, settings.String("v0.10.26")).
		Set(NodejsPlatform, settings.String("linux-x64")).
		Set(NodejsArchiveBase, settings.String("node-${NODEJS_VERSION}-${NODEJS_PLATFORM}")).
		Set(NodejsArchive, settings.String("${NODEJS_ARCHIVE_BASE}.tar.gz")).
		Set(NodejsDownloadURL, settings.String("http://nodejs.org/dist/${NODEJS_VERSION}/${NODEJS_ARCHIVE}")).
		Set(NodejsSymlink, settings.String("${ENV_ROOT}/nodejs")).
		Set(ActivateScript, settings.String("${ENV_ROOT}/activate.sh"))
	return def
}
