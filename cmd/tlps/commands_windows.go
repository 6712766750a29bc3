//go:build windows

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"gotlhelp/procfind"
	"gotlhelp/tlhelp"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sys/windows"
)

var (
	formatFlag string

	log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "tlps"))
)

func run() int {
	root := &cobra.Command{
		Use:           "tlps",
		Short:         "Inspect processes through Toolhelp32 snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "output format: text, json or yaml")

	root.AddCommand(processesCommand())
	root.AddCommand(modulesCommand())
	root.AddCommand(threadsCommand())
	root.AddCommand(heapsCommand())
	root.AddCommand(treeCommand())
	root.AddCommand(readCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func processesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "processes",
		Short: "List all running processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := procfind.NewFinder().FindAllProcesses()
			if err != nil {
				return err
			}
			return emit(all, func() {
				fmt.Printf("%8s %8s %7s %s\n", "PID", "PPID", "THREADS", "NAME")
				for _, p := range all {
					fmt.Printf("%8d %8d %7d %s\n", p.PID, p.PPID, p.Threads, p.Name)
				}
			})
		},
	}
}

func modulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modules <pid>",
		Short: "List the modules loaded into a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parsePid(args[0])
			if err != nil {
				return err
			}
			mods, err := procfind.Modules(pid)
			if err != nil {
				return err
			}
			return emit(mods, func() {
				fmt.Printf("%18s %10s %-24s %s\n", "BASE", "SIZE", "MODULE", "PATH")
				for _, m := range mods {
					fmt.Printf("0x%016x %10d %-24s %s\n", m.BaseAddr, m.BaseSize, m.Module, m.ExePath)
				}
			})
		},
	}
}

func threadsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "threads [pid]",
		Short: "List threads, optionally only those of one process",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var threads []tlhelp.ThreadEntry
			if len(args) == 1 {
				pid, err := parsePid(args[0])
				if err != nil {
					return err
				}
				threads, err = procfind.Threads(pid)
				if err != nil {
					return err
				}
			} else {
				snap, err := tlhelp.NewThreadSnapshot()
				if err != nil {
					return err
				}
				defer snap.Close()
				for entry := range snap.All() {
					threads = append(threads, entry)
				}
				if err := snap.Err(); err != nil {
					return err
				}
			}
			return emit(threads, func() {
				fmt.Printf("%8s %8s %8s\n", "TID", "PID", "BASEPRI")
				for _, t := range threads {
					fmt.Printf("%8d %8d %8d\n", t.ThreadID, t.OwnerProcessID, t.BasePriority)
				}
			})
		},
	}
}

// heapSummary is the serializable shape of one walked heap.
type heapSummary struct {
	HeapID     uint64
	Flags      uint32
	Blocks     int
	TotalBytes uint64
	Entries    []heapBlock `json:",omitempty" yaml:",omitempty"`
}

type heapBlock struct {
	Address   uint64
	BlockSize uint64
	Flags     uint32
	LockCount uint32
}

func heapsCommand() *cobra.Command {
	var showBlocks bool
	cmd := &cobra.Command{
		Use:   "heaps <pid>",
		Short: "Walk the heaps of a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parsePid(args[0])
			if err != nil {
				return err
			}
			snap, err := tlhelp.NewHeapListSnapshot(pid)
			if err != nil {
				return err
			}
			defer snap.Close()

			var heaps []heapSummary
			for hl := range snap.All() {
				sum := heapSummary{HeapID: uint64(hl.HeapID), Flags: hl.Flags}
				for block := range hl.All() {
					sum.Blocks++
					sum.TotalBytes += uint64(block.BlockSize)
					if showBlocks {
						sum.Entries = append(sum.Entries, heapBlock{
							Address:   uint64(block.Address),
							BlockSize: uint64(block.BlockSize),
							Flags:     block.Flags,
							LockCount: block.LockCount,
						})
					}
				}
				heaps = append(heaps, sum)
			}
			if err := snap.Err(); err != nil {
				return err
			}
			log.Debugln("Walked", len(heaps), "heaps of pid", pid)
			return emit(heaps, func() {
				fmt.Printf("%18s %6s %8s %12s\n", "HEAP", "FLAGS", "BLOCKS", "BYTES")
				for _, h := range heaps {
					fmt.Printf("0x%016x %6d %8d %12d\n", h.HeapID, h.Flags, h.Blocks, h.TotalBytes)
					if showBlocks {
						for _, b := range h.Entries {
							fmt.Printf("  0x%016x %10d flags=%d locks=%d\n", b.Address, b.BlockSize, b.Flags, b.LockCount)
						}
					}
				}
			})
		},
	}
	cmd.Flags().BoolVar(&showBlocks, "blocks", false, "list every block of every heap")
	return cmd
}

func treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [pid]",
		Short: "Show the process tree rooted at a pid (default: this process)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid := windows.GetCurrentProcessId()
			if len(args) == 1 {
				var err error
				pid, err = parsePid(args[0])
				if err != nil {
					return err
				}
			}
			node, err := procfind.NewFinder().GetProcessTree(pid)
			if err != nil {
				return err
			}
			return emit(node, func() {
				printTree(node, "")
			})
		},
	}
}

func printTree(node *procfind.ProcessTreeNode, indent string) {
	fmt.Printf("%s%s (%d)\n", indent, node.Process.Name, node.Process.PID)
	for _, child := range node.Children {
		printTree(child, indent+"  ")
	}
}

func readCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read <pid> <addr> <len>",
		Short: "Hex dump memory of another process",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parsePid(args[0])
			if err != nil {
				return err
			}
			addr, err := strconv.ParseUint(args[1], 0, 64)
			if err != nil {
				return fmt.Errorf("bad address %q: %w", args[1], err)
			}
			size, err := strconv.ParseUint(args[2], 0, 32)
			if err != nil {
				return fmt.Errorf("bad length %q: %w", args[2], err)
			}
			buf := make([]byte, size)
			n, err := tlhelp.ReadProcessMemory(pid, uintptr(addr), buf)
			if err != nil {
				return err
			}
			if n < len(buf) {
				log.Warn("Short read: ", n, " of ", len(buf), " bytes")
			}
			dumper := hex.Dumper(os.Stdout)
			defer dumper.Close()
			_, err = dumper.Write(buf[:n])
			return err
		},
	}
}

func parsePid(arg string) (uint32, error) {
	pid, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad pid %q: %w", arg, err)
	}
	return uint32(pid), nil
}
