// Package sysinfo probes the machine for the specs shown on the driver and
// ready steps. Every probe degrades on its own: a failure leaves its field
// empty and the UI falls back to placeholders.
package sysinfo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rostart/rostart/internal/errdefs"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sys/unix"
)

// NoGPU is reported when no display controller can be found.
const NoGPU = "N/A (Driver not active)"

var (
	getOsFunc   = func() string { return runtime.GOOS }
	lookPath    = exec.LookPath
	runLspci    = defaultRunLspci
	cpuInfo     = cpu.InfoWithContext
	memInfo     = mem.VirtualMemoryWithContext
	diskUsage   = disk.UsageWithContext
	kernelUname = unix.Uname
)

// Detect gathers the current machine's specs.
func Detect(ctx context.Context) (host.SystemSpecs, error) {
	if getOsFunc() != "linux" {
		return host.SystemSpecs{}, errdefs.NewCustomError(errdefs.ErrTypeNotLinux,
			fmt.Sprintf("Only linux is supported, but I found %s", getOsFunc()))
	}

	specs := host.SystemSpecs{
		CPU:     detectCPU(ctx),
		GPU:     detectGPU(ctx),
		RAM:     detectRAM(ctx),
		Storage: detectStorage(ctx),
		Kernel:  detectKernel(),
	}

	d, err := readOSRelease()
	if err != nil {
		log.Debugf("os-release: %v", err)
		specs.Distro = "Linux"
		specs.DistroID = "linux"
	} else {
		specs.Distro = d.Name
		specs.Version = d.VersionID
		specs.DistroID = d.ID
	}

	return specs, nil
}

func detectCPU(ctx context.Context) string {
	infos, err := cpuInfo(ctx)
	if err != nil || len(infos) == 0 {
		log.Debugf("cpu info: %v", err)
		return ""
	}
	return strings.TrimSpace(infos[0].ModelName)
}

func detectRAM(ctx context.Context) string {
	vm, err := memInfo(ctx)
	if err != nil {
		log.Debugf("memory info: %v", err)
		return ""
	}
	return HumanSize(vm.Total)
}

func detectStorage(ctx context.Context) string {
	usage, err := diskUsage(ctx, "/")
	if err != nil {
		log.Debugf("disk usage: %v", err)
		return ""
	}
	return HumanSize(usage.Total)
}

func detectKernel() string {
	var uts unix.Utsname
	if err := kernelUname(&uts); err != nil {
		log.Debugf("uname: %v", err)
		return ""
	}
	return unix.ByteSliceToString(uts.Release[:])
}

func detectGPU(ctx context.Context) string {
	if _, err := lookPath("lspci"); err != nil {
		return NoGPU
	}
	out, err := runLspci(ctx)
	if err != nil {
		log.Debugf("lspci: %v", err)
		return NoGPU
	}
	if gpu := parseLspci(out); gpu != "" {
		return gpu
	}
	return NoGPU
}

func defaultRunLspci(ctx context.Context) ([]byte, error) {
	return exec.CommandContext(ctx, "lspci").Output()
}

// parseLspci returns the first VGA or 3D controller, preferring the
// bracketed marketing name when present.
func parseLspci(out []byte) string {
	for _, line := range bytes.Split(out, []byte("\n")) {
		text := string(line)
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "vga") && !strings.Contains(lower, "3d") {
			continue
		}

		parts := strings.SplitN(text, ":", 3)
		name := strings.TrimSpace(parts[len(parts)-1])
		if open := strings.LastIndex(name, "["); open >= 0 {
			if end := strings.Index(name[open:], "]"); end > 0 {
				name = name[open+1 : open+end]
			}
		}
		return name
	}
	return ""
}

var sizeUnits = []string{"", "KB", "MB", "GB", "TB"}

// HumanSize renders a byte count in 1024 steps with one decimal.
func HumanSize(n uint64) string {
	size := float64(n)
	for _, unit := range sizeUnits {
		if size < 1024 {
			return strings.TrimSpace(fmt.Sprintf("%.1f %s", size, unit))
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f PB", size)
}
