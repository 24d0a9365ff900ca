package booking

import "testing"

func TestCalculateCommissionFixtures(t *testing.T) {
	cases := []struct {
		totalPrice      int64
		adminCommission int64
		providerPayout  int64
	}{
		{300000, 90000, 210000},
		{500000, 150000, 350000},
		{1000000, 300000, 700000},
		{150000, 45000, 105000},
		{0, 0, 0},
	}
	for _, c := range cases {
		got := CalculateCommission(c.totalPrice)
		if got.AdminCommission != c.adminCommission {
			t.Errorf("CalculateCommission(%d).AdminCommission = %d, want %d",
				c.totalPrice, got.AdminCommission, c.adminCommission)
		}
		if got.ProviderPayout != c.providerPayout {
			t.Errorf("CalculateCommission(%d).ProviderPayout = %d, want %d",
				c.totalPrice, got.ProviderPayout, c.providerPayout)
		}
	}
}

func TestCalculateCommissionSplitIsExact(t *testing.T) {
	// The payout is derived by subtraction, so the parts must always sum to
	// the whole, including where 30% does not divide evenly.
	prices := []int64{1, 2, 3, 7, 99, 101, 12345, 99999, 250001, 333333, 1000001}
	for _, p := range prices {
		got := CalculateCommission(p)
		if got.AdminCommission+got.ProviderPayout != p {
			t.Errorf("split of %d drifts: %d + %d = %d",
				p, got.AdminCommission, got.ProviderPayout, got.AdminCommission+got.ProviderPayout)
		}
		if got.AdminCommission < 0 || got.ProviderPayout < 0 {
			t.Errorf("split of %d produced a negative part: %+v", p, got)
		}
	}
}
