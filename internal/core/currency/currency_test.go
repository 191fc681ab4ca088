package currency_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/euroviaje/trip-ledger/internal/core/currency"
)

func TestCurrency(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Currency Suite")
}

var _ = Describe("Rates", func() {
	rates := currency.Rates{EURToCLP: 1000, EURToUSD: 1.1}

	Describe("ToEUR", func() {
		It("should treat EUR as identity", func() {
			eur, err := rates.ToEUR(42.5, currency.EUR)
			Expect(err).ToNot(HaveOccurred())
			Expect(eur).To(Equal(42.5))
		})

		It("should divide CLP by the EUR to CLP rate", func() {
			eur, err := rates.ToEUR(25000, currency.CLP)
			Expect(err).ToNot(HaveOccurred())
			Expect(eur).To(Equal(25.0))
		})

		It("should divide USD by the EUR to USD rate", func() {
			eur, err := rates.ToEUR(22, currency.USD)
			Expect(err).ToNot(HaveOccurred())
			Expect(eur).To(BeNumerically("~", 20.0, 1e-9))
		})

		It("should reject an unknown currency", func() {
			_, err := rates.ToEUR(1, currency.Currency("GBP"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Convert", func() {
		It("should route CLP to USD through EUR", func() {
			// 11000 CLP -> 11 EUR -> 12.1 USD
			usd, err := rates.Convert(11000, currency.CLP, currency.USD)
			Expect(err).ToNot(HaveOccurred())
			Expect(usd).To(BeNumerically("~", 12.1, 1e-9))
		})

		It("should give the same answer as two explicit pivot steps", func() {
			direct, err := rates.Convert(345.67, currency.USD, currency.CLP)
			Expect(err).ToNot(HaveOccurred())

			eur, err := rates.ToEUR(345.67, currency.USD)
			Expect(err).ToNot(HaveOccurred())
			stepped, err := rates.FromEUR(eur, currency.CLP)
			Expect(err).ToNot(HaveOccurred())

			Expect(direct).To(Equal(stepped))
		})

		It("should round-trip an amount within a cent", func() {
			amounts := []float64{0.01, 1, 19.99, 123.45, 99999.99}
			for _, a := range amounts {
				clp, err := rates.Convert(a, currency.EUR, currency.CLP)
				Expect(err).ToNot(HaveOccurred())
				back, err := rates.Convert(clp, currency.CLP, currency.EUR)
				Expect(err).ToNot(HaveOccurred())
				Expect(back).To(BeNumerically("~", a, 0.01))
			}
		})
	})

	Describe("Validate", func() {
		It("should reject zero or negative rates", func() {
			Expect(currency.Rates{EURToCLP: 0, EURToUSD: 1}.Validate()).To(HaveOccurred())
			Expect(currency.Rates{EURToCLP: 1000, EURToUSD: -1}.Validate()).To(HaveOccurred())
		})

		It("should reject NaN rates", func() {
			Expect(currency.Rates{EURToCLP: math.NaN(), EURToUSD: 1}.Validate()).To(HaveOccurred())
		})

		It("should accept sensible rates", func() {
			Expect(rates.Validate()).ToNot(HaveOccurred())
		})
	})
})

var _ = Describe("Cents", func() {
	It("should round decimal amounts to the nearest cent", func() {
		Expect(currency.ToCents(20.00)).To(Equal(int64(2000)))
		Expect(currency.ToCents(19.995)).To(Equal(int64(2000)))
		Expect(currency.ToCents(0.004)).To(Equal(int64(0)))
	})

	It("should coerce NaN and Inf to zero instead of corrupting a write", func() {
		Expect(currency.ToCents(math.NaN())).To(Equal(int64(0)))
		Expect(currency.ToCents(math.Inf(1))).To(Equal(int64(0)))
		Expect(currency.ToCents(math.Inf(-1))).To(Equal(int64(0)))
	})

	It("should convert cents back to decimals", func() {
		Expect(currency.FromCents(2000)).To(Equal(20.0))
		Expect(currency.FromCents(-150)).To(Equal(-1.5))
	})
})
