package explorer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yates-Labs/bikeshare/internal/config"
	"github.com/Yates-Labs/bikeshare/internal/stats"
	"github.com/Yates-Labs/bikeshare/internal/trip"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1423854,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0
955915,2017-05-25 18:19:03,2017-05-25 18:45:53,1610,Theater on the Lake,Sheffield Ave & Waveland Ave,Subscriber,Female,1992.0
9031,2017-01-04 08:27:49,2017-01-04 08:34:45,416,May St & Taylor St,Wood St & Taylor St,Customer,,
`

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
482740,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Subscriber
`

// setupDataDir writes the sample city files and returns a config pointing at them
func setupDataDir(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chicago.csv"), []byte(chicagoCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "washington.csv"), []byte(washingtonCSV), 0o644))

	cfg := config.Default()
	cfg.DataDir = dir
	return cfg
}

func runScript(t *testing.T, cfg config.Config, script string) string {
	t.Helper()
	var out bytes.Buffer
	e := New(Options{Config: cfg, In: strings.NewReader(script), Out: &out})
	require.NoError(t, e.Interactive(context.Background()))
	return out.String()
}

func TestExplorer_Run(t *testing.T) {
	e := New(Options{Config: setupDataDir(t)})

	report, filtered, err := e.Run(context.Background(), trip.Filter{City: "chicago", Month: time.June, Day: trip.AllDays})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Trips)
	assert.Equal(t, 1, filtered.Len())
	assert.Equal(t, "chicago-june-all", report.ID)
	assert.Equal(t, "Wood St & Hubbard St", report.Stations.StartStation)
	assert.Equal(t, 321*time.Second, report.Durations.Total)
}

func TestExplorer_Run_NoMatches(t *testing.T) {
	e := New(Options{Config: setupDataDir(t)})

	_, filtered, err := e.Run(context.Background(), trip.Filter{City: "washington", Month: time.February, Day: trip.AllDays})
	assert.ErrorIs(t, err, stats.ErrNoTrips)
	assert.Equal(t, 0, filtered.Len())
}

func TestExplorer_Run_Errors(t *testing.T) {
	e := New(Options{Config: setupDataDir(t)})

	_, _, err := e.Run(context.Background(), trip.NewFilter("boston"))
	assert.ErrorIs(t, err, config.ErrUnknownCity)

	_, _, err = e.Run(context.Background(), trip.NewFilter("new york city"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = e.Run(ctx, trip.NewFilter("chicago"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExplorer_TableIsCached(t *testing.T) {
	cfg := setupDataDir(t)
	e := New(Options{Config: cfg})

	first, err := e.Table("chicago")
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(cfg.DataDir, "chicago.csv")))

	second, err := e.Table("chicago")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestExplorer_Interactive_FullSession(t *testing.T) {
	out := runScript(t, setupDataDir(t), "Chicago\nall\nall\nyes\nno\n")

	assert.Contains(t, out, "Hello! Let's explore some US bikeshare data!")
	assert.Contains(t, out, "3 trips for Chicago, all months, every day")
	assert.Contains(t, out, "Calculating The Most Frequent Times of Travel...")
	assert.Contains(t, out, "Calculating User Stats...")
	assert.Contains(t, out, "Would you like to see 5 lines of raw data?")
	assert.Contains(t, out, "2017-06-23 15:09:32")
	assert.Contains(t, out, "No more trips to show.")
	assert.Contains(t, out, "Would you like to restart? Enter yes or no.")
}

func TestExplorer_Interactive_Restart(t *testing.T) {
	script := strings.Join([]string{
		"washington", "all", "all", "no", "yes",
		"chicago", "june", "friday", "no", "no",
	}, "\n") + "\n"
	out := runScript(t, setupDataDir(t), script)

	assert.Contains(t, out, "2 trips for Washington, all months, every day")
	assert.Contains(t, out, "No gender data available for this city.")
	assert.Contains(t, out, "1 trips for Chicago, June, Fridays")
	assert.Equal(t, 2, strings.Count(out, "Hello! Let's explore some US bikeshare data!"))
}

func TestExplorer_Interactive_NoMatches(t *testing.T) {
	out := runScript(t, setupDataDir(t), "chicago\nfebruary\nall\nno\n")

	assert.Contains(t, out, "No trips match chicago / february / all.")
	assert.NotContains(t, out, "Calculating")
}

func TestExplorer_Interactive_MissingFile(t *testing.T) {
	out := runScript(t, setupDataDir(t), "new york city\nall\nall\nno\n")

	assert.Contains(t, out, "bikeshare fetch")
	assert.Contains(t, out, "Would you like to restart?")
}

func TestExplorer_Interactive_InputClosed(t *testing.T) {
	out := runScript(t, setupDataDir(t), "chicago\n")
	assert.Contains(t, out, "Which month would you like to see?")
}

func TestExplorer_Interactive_NoInput(t *testing.T) {
	e := New(Options{Config: setupDataDir(t)})
	assert.Error(t, e.Interactive(context.Background()))
}
