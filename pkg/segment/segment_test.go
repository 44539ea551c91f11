package segment_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tauraamui/mvextract/pkg/segment"
)

func TestPlan(t *testing.T) {
	is := is.New(t)

	plan := segment.Plan(13, 4, "labelled/walk.mp4", "segments")
	is.Equal(len(plan), 3)
	is.Equal(plan[0], segment.Segment{
		Index: 0, Start: 0, Duration: 4, Source: "labelled/walk.mp4", Output: filepath.Join("segments", "walk_0.mp4"),
	})
	is.Equal(plan[2].Start, 8)
	is.Equal(plan[2].Output, filepath.Join("segments", "walk_2.mp4"))

	// a segment ending exactly at the end of the source is dropped
	is.Equal(len(segment.Plan(12, 4, "walk.mp4", "out")), 2)
	is.Equal(len(segment.Plan(4, 4, "walk.mp4", "out")), 0)
	is.Equal(len(segment.Plan(10, 0, "walk.mp4", "out")), 0)
}

func indexOf(args []string, v string) int {
	for i, a := range args {
		if a == v {
			return i
		}
	}
	return -1
}

func TestSegmentArgs(t *testing.T) {
	s := segment.Segment{Start: 8, Duration: 4, Source: "walk.mp4", Output: "out/walk_2.mp4"}
	args := s.Args(320)

	for flag, want := range map[string]string{"-i": "walk.mp4", "-ss": "8", "-t": "4", "-filter:v": "scale=320:-1"} {
		i := indexOf(args, flag)
		require.GreaterOrEqual(t, i, 0, "missing %s in %v", flag, args)
		require.Less(t, i+1, len(args))
		assert.Equal(t, want, args[i+1], flag)
	}
	assert.Contains(t, args, "out/walk_2.mp4")
	assert.Contains(t, args, "-y")
}

type RunTestSuite struct {
	suite.Suite
	fs       afero.Fs
	resetFS  func()
	resetRun func()
	calls    [][]string
	fail     int
}

func (suite *RunTestSuite) SetupTest() {
	suite.fs = afero.NewMemMapFs()
	suite.resetFS = segment.OverloadFS(suite.fs)
	suite.calls = nil
	suite.fail = -1
	suite.resetRun = segment.OverloadRunFFmpeg(func(_ context.Context, args []string) error {
		suite.calls = append(suite.calls, args)
		if len(suite.calls)-1 == suite.fail {
			return errors.New("exit status 1")
		}
		return nil
	})
}

func (suite *RunTestSuite) TearDownTest() {
	suite.resetFS()
	suite.resetRun()
}

func (suite *RunTestSuite) TestRunCutsEverySegment() {
	plan := segment.Plan(13, 4, "walk.mp4", "segments")

	require.NoError(suite.T(), segment.Run(context.Background(), plan, 320))
	assert.Len(suite.T(), suite.calls, 3)

	exists, err := afero.DirExists(suite.fs, "segments")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

func (suite *RunTestSuite) TestRunStopsAtFirstFailure() {
	suite.fail = 1
	err := segment.Run(context.Background(), segment.Plan(13, 4, "walk.mp4", "segments"), 320)
	require.Error(suite.T(), err)
	assert.EqualError(suite.T(), err, "unable to cut segment 1: exit status 1")
	assert.Len(suite.T(), suite.calls, 2)
}

func (suite *RunTestSuite) TestRunCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := segment.Run(ctx, segment.Plan(13, 4, "walk.mp4", "segments"), 320)
	assert.True(suite.T(), errors.Is(err, context.Canceled))
	assert.Empty(suite.T(), suite.calls)
}

func TestRunTestSuite(t *testing.T) {
	suite.Run(t, &RunTestSuite{})
}
