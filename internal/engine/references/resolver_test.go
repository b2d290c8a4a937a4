package references_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/internal/adapters/fs"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports/mocks"
	"go.trai.ch/fuse/internal/engine/references"
	"go.uber.org/mock/gomock"
)

const strutil = "example.com/strutil"

type fixture struct {
	resolver *references.Resolver
	store    *mocks.MockPackageStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockPackageStore(ctrl)
	store.EXPECT().Root().Return("/store").AnyTimes()
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	files := fstest.MapFS{
		"project/libs/strutil.zip": {Data: []byte("zip")},
		"project/helpers.zip":      {Data: []byte("zip")},
		"project/dir.zip/keep":     {Data: []byte("not a file reference")},

		"project/example.com/strutil.zip": {Data: []byte("shadow")},
	}
	settings := &domain.Settings{ProjectRoot: "/project", Target: "linux_amd64"}
	resolver := references.NewResolver(settings, fs.NewMapFSAdapter("/", files), store, logger)

	return &fixture{resolver: resolver, store: store}
}

func (fx *fixture) resolveOne(t *testing.T, ref domain.ReferenceSpec) (string, error) {
	t.Helper()
	resolved, err := fx.resolver.Resolve(context.Background(), []domain.ReferenceSpec{ref})
	if err != nil {
		return "", err
	}
	require.Len(t, resolved, 1)
	return resolved[0].Path, nil
}

func TestResolve_PathReferences(t *testing.T) {
	fx := newFixture(t)

	p, err := fx.resolveOne(t, domain.ReferenceSpec{Name: "libs/strutil.zip"})
	require.NoError(t, err)
	assert.Equal(t, "/project/libs/strutil.zip", p)

	p, err = fx.resolveOne(t, domain.ReferenceSpec{Name: "/project/helpers.zip"})
	require.NoError(t, err)
	assert.Equal(t, "/project/helpers.zip", p)

	_, err = fx.resolveOne(t, domain.ReferenceSpec{Name: "libs/missing.zip"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
	assert.ErrorContains(t, err, `reference "libs/missing.zip"`)
}

func TestResolve_ProjectRootFile(t *testing.T) {
	fx := newFixture(t)

	p, err := fx.resolveOne(t, domain.ReferenceSpec{Name: "helpers"})
	require.NoError(t, err)
	assert.Equal(t, "/project/helpers.zip", p)

	p, err = fx.resolveOne(t, domain.ReferenceSpec{Name: "helpers.zip"})
	require.NoError(t, err)
	assert.Equal(t, "/project/helpers.zip", p)
}

func TestResolve_PackageIDSkipsProjectRoot(t *testing.T) {
	fx := newFixture(t)
	fx.store.EXPECT().Versions(strutil).Return([]string{"1.0.0"}, nil)
	fx.store.EXPECT().Package(strutil, "1.0.0").Return(&domain.PackageCandidate{
		ID:      strutil,
		Version: "1.0.0",
		Files:   []domain.PackageFile{{Path: "ref/strutil.zip"}},
	}, nil)

	p, err := fx.resolveOne(t, domain.ReferenceSpec{Name: strutil})
	require.NoError(t, err)
	assert.Equal(t, "/store/example.com/strutil/1.0.0/ref/strutil.zip", p)
}

func TestResolve_DirectoryIsNotAReference(t *testing.T) {
	fx := newFixture(t)
	fx.store.EXPECT().Versions("dir").Return([]string{}, nil)

	_, err := fx.resolveOne(t, domain.ReferenceSpec{Name: "dir"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestResolve_HighestVersion(t *testing.T) {
	fx := newFixture(t)
	fx.store.EXPECT().Versions(strutil).Return([]string{"1.2.0", "1.10.0", "0.9.0"}, nil)
	fx.store.EXPECT().Package(strutil, "1.10.0").Return(&domain.PackageCandidate{
		ID:      strutil,
		Version: "1.10.0",
		Files:   []domain.PackageFile{{Path: "ref/strutil.zip"}},
	}, nil)

	p, err := fx.resolveOne(t, domain.ReferenceSpec{Name: strutil})
	require.NoError(t, err)
	assert.Equal(t, "/store/example.com/strutil/1.10.0/ref/strutil.zip", p)
}

func TestResolve_ExactVersion(t *testing.T) {
	fx := newFixture(t)
	fx.store.EXPECT().Versions(strutil).Return([]string{"1.2.0", "1.10.0"}, nil)
	fx.store.EXPECT().Package(strutil, "1.2.0").Return(&domain.PackageCandidate{
		ID:      strutil,
		Version: "1.2.0",
		Files:   []domain.PackageFile{{Path: "ref/strutil.zip"}},
	}, nil)

	p, err := fx.resolveOne(t, domain.ReferenceSpec{Name: strutil, Version: "1.2"})
	require.NoError(t, err)
	assert.Equal(t, "/store/example.com/strutil/1.2.0/ref/strutil.zip", p)
}

func TestResolve_VersionErrors(t *testing.T) {
	tests := []struct {
		name      string
		installed []string
		version   string
		want      error
	}{
		{name: "invalid constraint", installed: []string{"1.0.0"}, version: "latest-ish", want: domain.ErrInvalidVersion},
		{name: "no matching version", installed: []string{"1.0.0", "2.0.0"}, version: "1.5.0", want: domain.ErrPackageNotFound},
		{name: "not installed", installed: []string{}, want: domain.ErrPackageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			fx.store.EXPECT().Versions(strutil).Return(tt.installed, nil)

			_, err := fx.resolveOne(t, domain.ReferenceSpec{Name: strutil, Version: tt.version})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorContains(t, err, `reference "example.com/strutil"`)
		})
	}
}

func TestResolve_FilePriority(t *testing.T) {
	refForTarget := domain.PackageFile{Path: "ref/linux_amd64/strutil.zip", Target: "linux_amd64"}
	refNeutral := domain.PackageFile{Path: "ref/strutil.zip"}
	libForTarget := domain.PackageFile{Path: "lib/linux_amd64/strutil.zip", Target: "linux_amd64"}
	refOtherTarget := domain.PackageFile{Path: "ref/darwin_arm64/strutil.zip", Target: "darwin_arm64"}
	wrongName := domain.PackageFile{Path: "ref/other.zip"}

	tests := []struct {
		name  string
		files []domain.PackageFile
		want  string
	}{
		{
			name:  "reference tree for target",
			files: []domain.PackageFile{libForTarget, refNeutral, refForTarget},
			want:  refForTarget.Path,
		},
		{
			name:  "target independent reference tree",
			files: []domain.PackageFile{libForTarget, refOtherTarget, refNeutral},
			want:  refNeutral.Path,
		},
		{
			name:  "other file for target",
			files: []domain.PackageFile{refOtherTarget, wrongName, libForTarget},
			want:  libForTarget.Path,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			fx.store.EXPECT().Versions(strutil).Return([]string{"1.0.0"}, nil)
			fx.store.EXPECT().Package(strutil, "1.0.0").
				Return(&domain.PackageCandidate{ID: strutil, Version: "1.0.0", Files: tt.files}, nil)

			p, err := fx.resolveOne(t, domain.ReferenceSpec{Name: strutil})
			require.NoError(t, err)
			assert.Equal(t, "/store/example.com/strutil/1.0.0/"+tt.want, p)
		})
	}
}

func TestResolve_NoMatchingBinary(t *testing.T) {
	fx := newFixture(t)
	fx.store.EXPECT().Versions(strutil).Return([]string{"1.0.0"}, nil)
	fx.store.EXPECT().Package(strutil, "1.0.0").Return(&domain.PackageCandidate{
		ID:      strutil,
		Version: "1.0.0",
		Files: []domain.PackageFile{
			{Path: "ref/darwin_arm64/strutil.zip", Target: "darwin_arm64"},
			{Path: "ref/other.zip"},
		},
	}, nil)

	_, err := fx.resolveOne(t, domain.ReferenceSpec{Name: strutil})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReferenceAssemblyNotFound)
}

func TestResolve_SortedAndStopsAtFirstFailure(t *testing.T) {
	fx := newFixture(t)

	resolved, err := fx.resolver.Resolve(context.Background(), []domain.ReferenceSpec{
		{Name: "libs/strutil.zip"},
		{Name: "helpers"},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.ReferenceSpec{
		{Name: "helpers", Path: "/project/helpers.zip"},
		{Name: "libs/strutil.zip", Path: "/project/libs/strutil.zip"},
	}, resolved)

	fx.store.EXPECT().Versions("a/missing").Return([]string{}, nil)
	_, err = fx.resolver.Resolve(context.Background(), []domain.ReferenceSpec{
		{Name: "z/never-looked-up"},
		{Name: "a/missing"},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, `reference "a/missing"`)
}
