package sysinfo

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rostart/rostart/internal/errdefs"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

const ubuntuRelease = `PRETTY_NAME="Ubuntu 24.04.1 LTS"
NAME="Ubuntu"
VERSION_ID="24.04"
VERSION="24.04.1 LTS (Noble Numbat)"
ID=ubuntu
# comment
ID_LIKE=debian
`

func TestParseOSRelease(t *testing.T) {
	d, err := parseOSRelease(strings.NewReader(ubuntuRelease))
	require.NoError(t, err)
	assert.Equal(t, Distro{Name: "Ubuntu", VersionID: "24.04", ID: "ubuntu", PrettyName: "Ubuntu 24.04.1 LTS"}, d)

	d, err = parseOSRelease(strings.NewReader("NAME=\"Arch Linux\"\nID=arch\n"))
	require.NoError(t, err)
	assert.Equal(t, "rolling", d.VersionID)
}

func TestParseLspci(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{
			name: "bracketed name",
			out: "00:1f.3 Audio device: Intel Corporation Device 51c8\n" +
				"01:00.0 VGA compatible controller: NVIDIA Corporation GA106 [GeForce RTX 3060] (rev a1)\n",
			want: "GeForce RTX 3060",
		},
		{
			name: "plain name",
			out:  "00:02.0 VGA compatible controller: Intel Corporation UHD Graphics 620 (rev 07)\n",
			want: "Intel Corporation UHD Graphics 620 (rev 07)",
		},
		{
			name: "3d controller",
			out:  "02:00.0 3D controller: NVIDIA Corporation TU117M [GeForce MX450]\n",
			want: "GeForce MX450",
		},
		{
			name: "none",
			out:  "00:1f.3 Audio device: Intel Corporation Device 51c8\n",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLspci([]byte(tt.out)))
		})
	}
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512.0", HumanSize(512))
	assert.Equal(t, "1.5 KB", HumanSize(1536))
	assert.Equal(t, "16.0 GB", HumanSize(16<<30))
	assert.Equal(t, "2.0 TB", HumanSize(2<<40))
}

type stubs struct {
	goos      func() string
	look      func(string) (string, error)
	lspci     func(context.Context) ([]byte, error)
	cpu       func(context.Context) ([]cpu.InfoStat, error)
	mem       func(context.Context) (*mem.VirtualMemoryStat, error)
	disk      func(context.Context, string) (*disk.UsageStat, error)
	uname     func(*unix.Utsname) error
	osRelease func(string) (io.ReadCloser, error)
}

func install(t *testing.T, s stubs) {
	t.Helper()
	orig := stubs{getOsFunc, lookPath, runLspci, cpuInfo, memInfo, diskUsage, kernelUname, osOpen}
	t.Cleanup(func() {
		getOsFunc, lookPath, runLspci = orig.goos, orig.look, orig.lspci
		cpuInfo, memInfo, diskUsage = orig.cpu, orig.mem, orig.disk
		kernelUname, osOpen = orig.uname, orig.osRelease
	})

	getOsFunc, lookPath, runLspci = s.goos, s.look, s.lspci
	cpuInfo, memInfo, diskUsage = s.cpu, s.mem, s.disk
	kernelUname, osOpen = s.uname, s.osRelease
}

func healthy() stubs {
	return stubs{
		goos: func() string { return "linux" },
		look: func(string) (string, error) { return "/usr/bin/lspci", nil },
		lspci: func(context.Context) ([]byte, error) {
			return []byte("01:00.0 VGA compatible controller: AMD [Radeon RX 7600]\n"), nil
		},
		cpu: func(context.Context) ([]cpu.InfoStat, error) {
			return []cpu.InfoStat{{ModelName: " AMD Ryzen 5 7600 "}}, nil
		},
		mem: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 32 << 30}, nil
		},
		disk: func(context.Context, string) (*disk.UsageStat, error) {
			return &disk.UsageStat{Total: 1 << 40}, nil
		},
		uname: func(u *unix.Utsname) error {
			copy(u.Release[:], "6.8.0-45-generic")
			return nil
		},
		osRelease: func(string) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(ubuntuRelease)), nil
		},
	}
}

func TestDetect(t *testing.T) {
	install(t, healthy())

	specs, err := Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AMD Ryzen 5 7600", specs.CPU)
	assert.Equal(t, "Radeon RX 7600", specs.GPU)
	assert.Equal(t, "32.0 GB", specs.RAM)
	assert.Equal(t, "1.0 TB", specs.Storage)
	assert.Equal(t, "6.8.0-45-generic", specs.Kernel)
	assert.Equal(t, "Ubuntu", specs.Distro)
	assert.Equal(t, "24.04", specs.Version)
	assert.Equal(t, "ubuntu", specs.DistroID)
}

func TestDetectDegradesPerProbe(t *testing.T) {
	s := healthy()
	fail := errors.New("unavailable")
	s.look = func(string) (string, error) { return "", fail }
	s.mem = func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, fail }
	s.osRelease = func(string) (io.ReadCloser, error) { return nil, fail }
	install(t, s)

	specs, err := Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NoGPU, specs.GPU)
	assert.Empty(t, specs.RAM)
	assert.Equal(t, "AMD Ryzen 5 7600", specs.CPU)
	assert.Equal(t, "Linux", specs.Distro)
	assert.Empty(t, specs.Version)
}

func TestDetectRequiresLinux(t *testing.T) {
	s := healthy()
	s.goos = func() string { return "darwin" }
	install(t, s)

	_, err := Detect(context.Background())
	var custom *errdefs.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, errdefs.ErrTypeNotLinux, custom.Type)
}
