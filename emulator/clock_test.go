package emulator_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/fourbit/emulator"
)

var _ = Describe("Clock", func() {
	It("should default to 2 Hz", func() {
		clock := emulator.DefaultClock()

		Expect(clock.Period).To(Equal(emulator.CLOCK_PERIOD))
		Expect(clock.Hz()).To(BeNumerically("==", 2))
		Expect(clock.AtMax()).To(BeFalse())
		Expect(clock.AtMin()).To(BeFalse())
	})

	It("should not go faster than the minimum period", func() {
		clock := emulator.DefaultClock()

		for range 10 {
			clock.Faster()
		}

		Expect(clock.Period).To(Equal(emulator.CLOCK_MIN_PERIOD))
		Expect(clock.Hz()).To(BeNumerically("~", 128, 0.001))
		Expect(clock.AtMax()).To(BeTrue())
	})

	It("should not go slower than the maximum period", func() {
		clock := emulator.DefaultClock()

		for range 10 {
			clock.Slower()
		}

		Expect(clock.Period).To(Equal(emulator.CLOCK_MAX_PERIOD))
		Expect(clock.Hz()).To(BeNumerically("==", 0.5))
		Expect(clock.AtMin()).To(BeTrue())
	})

	DescribeTable("ClockHz",
		func(hz float64, period time.Duration) {
			Expect(emulator.ClockHz(hz).Period).To(Equal(period))
		},
		Entry("unthrottled", 0.0, time.Duration(0)),
		Entry("negative", -1.0, time.Duration(0)),
		Entry("4 Hz", 4.0, 250*time.Millisecond),
		Entry("too fast", 1000.0, emulator.CLOCK_MIN_PERIOD),
		Entry("too slow", 0.1, emulator.CLOCK_MAX_PERIOD),
	)

	It("should leave an unthrottled clock alone", func() {
		clock := emulator.ClockHz(0)

		clock.Faster()
		clock.Slower()

		Expect(clock.Period).To(BeZero())
		Expect(clock.Hz()).To(BeZero())
		Expect(clock.AtMax()).To(BeFalse())
		Expect(clock.AtMin()).To(BeFalse())
	})
})
