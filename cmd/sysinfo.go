package cmd

import (
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// frameMemoryShare is the fraction of available memory a frame buffer may use before warning
const frameMemoryShare = 0.25

// logHostInfo logs the CPU model and memory of the host at Info
func logHostInfo() {
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		logger.Infof("cpu: %s, %d logical cores", infos[0].ModelName, renderer.DefaultWorkers())
	} else {
		logger.Infof("cpu: %d logical cores", renderer.DefaultWorkers())
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		logger.Infof("memory: %d MiB available of %d MiB", vm.Available>>20, vm.Total>>20)
	}
}

// checkFrameMemory warns when a width x height frame buffer would take a large share of the
// memory currently available. It reports whether the warning was issued.
func checkFrameMemory(width, height int) bool {
	vm, err := mem.VirtualMemory()
	if err != nil {
		logger.Debugf("cannot read memory statistics: %v", err)
		return false
	}
	return warnFrameMemory(renderer.FrameSizeBytes(width, height), vm.Available)
}

func warnFrameMemory(frameBytes, available uint64) bool {
	if float64(frameBytes) <= frameMemoryShare*float64(available) {
		return false
	}
	logger.Warningf("frame buffer needs %d MiB, more than %.0f%% of the %d MiB available",
		frameBytes>>20, frameMemoryShare*100, available>>20)
	return true
}
