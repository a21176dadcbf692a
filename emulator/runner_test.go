package emulator_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/fourbit/cpu"
	"github.com/ezrec/fourbit/emulator"
)

var _ = Describe("Runner", func() {
	var (
		emu    *emulator.Emulator
		runner *emulator.Runner
	)

	BeforeEach(func() {
		var err error
		emu, err = emulator.NewEmulator()
		Expect(err).NotTo(HaveOccurred())

		runner = emulator.NewRunner(emu)
		runner.Clock = emulator.ClockHz(0)
	})

	load := func(lines ...string) {
		assemble(emu, lines...)
		Expect(emu.Reset()).To(Succeed())
	}

	It("should start at the default clock", func() {
		runner := emulator.NewRunner(emu)
		Expect(runner.Clock).To(Equal(emulator.DefaultClock()))
		Expect(runner.MaxSteps).To(BeZero())
	})

	It("should not run before a reset", func() {
		assemble(emu, "loop: jmp loop")

		steps, err := runner.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(BeZero())
	})

	It("should stop at the step limit", func() {
		load("loop: jmp loop")
		runner.MaxSteps = 10

		steps, err := runner.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(Equal(10))
		Expect(runner.Snapshot().Steps).To(Equal(10))
	})

	It("should observe every step", func() {
		load(
			"ldi 0",
			"loop: addi 1",
			"jmp loop",
		)

		var observed []int
		runner.Observe = func(state cpu.State) {
			observed = append(observed, state.Steps)
			if len(observed) == 5 {
				runner.Halt()
			}
		}

		steps, err := runner.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(Equal(5))
		Expect(observed).To(Equal([]int{1, 2, 3, 4, 5}))

		// ldi, addi, jmp, addi, jmp
		Expect(runner.Snapshot().A).To(Equal(uint8(2)))
	})

	It("should stop when reset", func() {
		load(
			"ldi 9",
			"loop: jmp loop",
		)

		runner.Observe = func(state cpu.State) {
			if state.Steps == 3 {
				runner.Reset()
			}
		}

		steps, err := runner.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(Equal(3))

		state := runner.Snapshot()
		Expect(state.PC).To(Equal(cpu.ORIGIN))
		Expect(state.A).To(BeZero())
		Expect(state.Steps).To(BeZero())
		Expect(state.HaltRequest).To(BeTrue())

		// The program must be reloaded to run again.
		runner.Observe = nil
		runner.MaxSteps = 1
		Expect(emu.Reset()).To(Succeed())

		steps, err = runner.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(Equal(1))
		Expect(runner.Snapshot().A).To(Equal(uint8(9)))
	})

	It("should report diagnostics", func() {
		load(
			"loop: pop",
			"jmp loop",
		)
		runner.MaxSteps = 4

		var diags []error
		runner.Diagnose = func(err error) {
			diags = append(diags, err)
		}

		steps, err := runner.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(Equal(4))
		Expect(diags).To(HaveLen(2))
		for _, diag := range diags {
			Expect(diag).To(MatchError(cpu.ErrStackUnderflow))
		}
		Expect(runner.Snapshot().Flag(cpu.FLAG_ERROR)).To(BeTrue())
	})

	It("should stop when the context is done", func() {
		load("loop: jmp loop")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		steps, err := runner.Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
		Expect(steps).To(BeZero())
	})

	It("should wait for the clock", func() {
		load("loop: jmp loop")
		runner.Clock = emulator.DefaultClock()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		steps, err := runner.Run(ctx)
		Expect(err).To(MatchError(context.DeadlineExceeded))
		Expect(steps).To(BeZero())
	})

	It("should halt from another goroutine", func() {
		load("loop: jmp loop")
		runner.Clock = emulator.Clock{Period: time.Millisecond}

		done := make(chan int)
		go func() {
			defer GinkgoRecover()
			steps, err := runner.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			done <- steps
		}()

		Eventually(func() int {
			return runner.Snapshot().Steps
		}).Should(BeNumerically(">=", 3))

		runner.Halt()

		var steps int
		Eventually(done).Should(Receive(&steps))
		Expect(steps).To(BeNumerically(">=", 3))
	})

	It("should adjust the clock", func() {
		runner.Clock = emulator.DefaultClock()

		runner.Faster()
		Expect(runner.Clock.Period).To(Equal(250 * time.Millisecond))

		runner.Slower()
		runner.Slower()
		Expect(runner.Clock.Period).To(Equal(time.Second))
	})
})
