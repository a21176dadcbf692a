package emulator_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/fourbit/cpu"
	"github.com/ezrec/fourbit/emulator"
)

func assemble(emu *emulator.Emulator, lines ...string) *cpu.Program {
	prog, err := emu.Assemble(strings.NewReader(strings.Join(lines, "\n")))
	Expect(err).NotTo(HaveOccurred())
	return prog
}

var _ = Describe("Emulator", func() {
	var emu *emulator.Emulator

	BeforeEach(func() {
		var err error
		emu, err = emulator.NewEmulator()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewEmulator", func() {
		It("should default to the large variant", func() {
			Expect(emu.Verbose).To(BeFalse())
			Expect(emu.Machine.Variant).To(Equal(cpu.VARIANT_LARGE))
			Expect(emu.Machine.Memory).To(HaveLen(256))
			Expect(emu.Program).NotTo(BeNil())
		})

		It("should apply options", func() {
			prog := &cpu.Program{}
			emu, err := emulator.NewEmulator(
				emulator.WithVariant(cpu.VARIANT_SMALL),
				emulator.WithVerbose(true),
				emulator.WithProgram(prog),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(emu.Verbose).To(BeTrue())
			Expect(emu.Machine.Verbose).To(BeTrue())
			Expect(emu.Machine.Memory).To(HaveLen(32))
			Expect(emu.Program).To(BeIdenticalTo(prog))
		})

		It("should reject an invalid variant", func() {
			bad := cpu.VARIANT_SMALL
			bad.StackLimit = 0x20

			emu, err := emulator.NewEmulator(emulator.WithVariant(bad))
			Expect(err).To(MatchError(cpu.ErrVariantStack))
			Expect(emu).To(BeNil())
		})
	})

	Describe("Defines", func() {
		It("should include the variant and flag defines", func() {
			defines := map[string]string{}
			for name, value := range emu.Defines() {
				defines[name] = value
			}

			Expect(defines).To(HaveKeyWithValue("CAPACITY", "256"))
			Expect(defines).To(HaveKeyWithValue("ORIGIN", "15"))
			Expect(defines).To(HaveKeyWithValue("STACK_LIMIT", "14"))
			Expect(defines).To(HaveKeyWithValue("FLAG_ERROR", "3"))
		})
	})

	Describe("Assemble", func() {
		It("should make the listing the current program", func() {
			prog := assemble(emu,
				"ldi 5",
				"push",
			)

			Expect(emu.Program).To(BeIdenticalTo(prog))
			Expect(prog.Values()).To(Equal([]uint8{0xa, 0x5, 0x0, 0x1}))
		})

		It("should predefine the machine defines", func() {
			prog := assemble(emu,
				"ldi $(CAPACITY // 64)",
				"lsp STACK_LIMIT",
			)

			Expect(prog.Values()).To(Equal([]uint8{0xa, 0x4, 0xc, 0xe}))
		})

		It("should report syntax errors with the line number", func() {
			before := emu.Program

			_, err := emu.Assemble(strings.NewReader("nop\nfrob"))

			var syn *cpu.ErrSyntax
			Expect(errors.As(err, &syn)).To(BeTrue())
			Expect(syn.LineNo).To(Equal(2))
			Expect(err).To(MatchError(cpu.ErrMnemonic("frob")))
			Expect(emu.Program).To(BeIdenticalTo(before))
		})
	})

	Describe("Reset", func() {
		It("should load the program at the origin", func() {
			assemble(emu,
				"ldi 7",
				"sta 0",
			)
			emu.Machine.A = 3

			Expect(emu.Reset()).To(Succeed())

			m := emu.Machine
			Expect(m.A).To(BeZero())
			Expect(m.PC).To(Equal(cpu.ORIGIN))
			Expect(m.Memory[cpu.ORIGIN : cpu.ORIGIN+4]).To(Equal([]uint8{0xa, 0x7, 0x2, 0x0}))
			Expect(m.HaltRequested()).To(BeFalse())
		})

		It("should fail without a program", func() {
			emu.Program = nil

			Expect(emu.Reset()).To(MatchError(emulator.ErrNoProgram))
		})

		It("should fail when the program does not fit", func() {
			emu, err := emulator.NewEmulator(emulator.WithVariant(cpu.VARIANT_SMALL))
			Expect(err).NotTo(HaveOccurred())

			assemble(emu,
				"0 0 0 0 0 0 0 0",
				"0 0 0 0 0 0 0 0",
				"0 0",
			)

			err = emu.Reset()
			Expect(err).To(MatchError(cpu.ErrCapacityExceeded))

			var capacity *cpu.ErrCapacity
			Expect(errors.As(err, &capacity)).To(BeTrue())
			Expect(capacity.Size).To(Equal(18))
			Expect(capacity.Available).To(Equal(17))
		})
	})

	Describe("Tick", func() {
		It("should be done until reset", func() {
			assemble(emu, "ldi 1")

			done, err := emu.Tick()
			Expect(done).To(BeTrue())
			Expect(err).NotTo(HaveOccurred())
			Expect(emu.Machine.Steps).To(BeZero())
		})

		It("should step the machine", func() {
			assemble(emu,
				"ldi 1",
				"addi 2",
			)
			Expect(emu.Reset()).To(Succeed())

			for range 2 {
				done, err := emu.Tick()
				Expect(done).To(BeFalse())
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(emu.Machine.A).To(Equal(uint8(3)))
			Expect(emu.Machine.Steps).To(Equal(2))
		})

		It("should consume a halt request", func() {
			assemble(emu, "loop: jmp loop")
			Expect(emu.Reset()).To(Succeed())

			emu.Machine.RequestHalt()

			done, _ := emu.Tick()
			Expect(done).To(BeTrue())

			done, _ = emu.Tick()
			Expect(done).To(BeFalse())
			Expect(emu.Machine.Steps).To(Equal(1))
		})

		It("should locate runtime diagnostics", func() {
			emu, err := emulator.NewEmulator(emulator.WithVariant(cpu.VARIANT_SMALL))
			Expect(err).NotTo(HaveOccurred())

			assemble(emu,
				"nop",
				"addb",
			)
			Expect(emu.Reset()).To(Succeed())

			_, err = emu.Tick()
			Expect(err).NotTo(HaveOccurred())

			Expect(emu.LineNo()).To(Equal(2))

			done, err := emu.Tick()
			Expect(done).To(BeFalse())
			Expect(err).To(MatchError(cpu.ErrInvalidOperand))

			var runtime *emulator.ErrRuntime
			Expect(errors.As(err, &runtime)).To(BeTrue())
			Expect(runtime.LineNo).To(Equal(2))
			Expect(runtime.PC).To(Equal(cpu.ORIGIN + 2))

			// Diagnostics are not fatal.
			done, err = emu.Tick()
			Expect(done).To(BeFalse())
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Code", func() {
		It("should decode the instruction at PC", func() {
			assemble(emu,
				"ldi 9",
				"skipe",
			)
			Expect(emu.Reset()).To(Succeed())

			Expect(emu.Offset()).To(Equal(0))
			Expect(emu.Code().String()).To(Equal("ldi 0x9"))

			_, err := emu.Tick()
			Expect(err).NotTo(HaveOccurred())

			Expect(emu.Offset()).To(Equal(2))
			Expect(emu.Code().String()).To(Equal("skipe"))
		})

		It("should have no line outside of the program", func() {
			assemble(emu, "jmp 8")
			Expect(emu.Reset()).To(Succeed())

			_, err := emu.Tick()
			Expect(err).NotTo(HaveOccurred())

			Expect(emu.Offset()).To(Equal(8))
			Expect(emu.LineNo()).To(BeZero())
		})
	})
})
