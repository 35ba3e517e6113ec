package game

import "testing"

func TestDegradeFloorsAtZero(t *testing.T) {
	item := NewEquipmentItem(EquipFishingNet)
	for i := 0; i < 1000; i++ {
		item.Degrade(1.0)
	}
	if item.Durability != 0 || !item.IsBroken() {
		t.Fatalf("expected a fully worn item, got %.1f", item.Durability)
	}
	if loss := item.Degrade(1.0); loss != 0 {
		t.Fatalf("broken gear cannot wear further, lost %.1f", loss)
	}
}

func TestBrokenGearContributesNoBonuses(t *testing.T) {
	rifle := NewEquipmentItem(EquipFlintlockRifle)
	kit := NewKit(rifle)
	if kit.Bonus(BonusHunting) != 15 {
		t.Fatalf("expected a fresh rifle to grant +15 hunting, got %d", kit.Bonus(BonusHunting))
	}
	rifle.Durability = 0
	if kit.Bonus(BonusHunting) != 0 {
		t.Fatalf("a broken rifle grants nothing, got %d", kit.Bonus(BonusHunting))
	}
	if kit.Has(EquipFlintlockRifle) {
		t.Fatalf("Has should ignore broken gear")
	}
}

func TestWornGearBonusesShrink(t *testing.T) {
	tent := NewEquipmentItem(EquipCanvasTent) // +50 weather protection fresh
	tent.Durability = 20                      // 20% durability, 0.5 multiplier
	if got := tent.EffectiveBonuses()[BonusWeatherProtection]; got != 25 {
		t.Fatalf("expected worn tent to grant 25, got %d", got)
	}
}

func TestRepairCapsAtMaxDurability(t *testing.T) {
	rng := SeededRNG(21)
	item := NewEquipmentItem(EquipCanvasTent)
	item.Durability = 95

	// Canvas tent repair difficulty 20 against skill 50+40+30 caps the
	// roll at 95%; retry until one succeeds.
	for i := 0; i < 50; i++ {
		before := item.Durability
		restored, ok := item.Repair(rng, 30, true, 40)
		if !ok {
			continue
		}
		if restored <= 0 {
			t.Fatalf("successful repair restored nothing from %.1f", before)
		}
		if item.Durability > item.MaxDurability {
			t.Fatalf("repair overshot max durability: %.1f", item.Durability)
		}
		return
	}
	t.Fatalf("no repair attempt succeeded in 50 tries at 95%% chance")
}

func TestRepairAtFullDurabilityIsRefused(t *testing.T) {
	rng := SeededRNG(1)
	item := NewEquipmentItem(EquipOxWagon)
	if restored, ok := item.Repair(rng, 30, true, 0); ok || restored != 0 {
		t.Fatalf("pristine gear needs no repair, got %.1f ok=%v", restored, ok)
	}
}

func TestStartingKitScalesWithDifficulty(t *testing.T) {
	easy := StartingKit(2, DifficultyEasy)
	hard := StartingKit(2, DifficultyHard)
	if len(easy.Items) <= len(hard.Items) {
		t.Fatalf("easy should set out with more gear: easy %d hard %d", len(easy.Items), len(hard.Items))
	}
	if !easy.Has(EquipRepairKit) {
		t.Fatalf("easy kit carries a repair kit")
	}
	if hard.Has(EquipRepairKit) {
		t.Fatalf("hard kit does not carry a repair kit")
	}

	big := StartingKit(4, DifficultyNormal)
	small := StartingKit(2, DifficultyNormal)
	if len(big.Items) != len(small.Items)+1 {
		t.Fatalf("parties of four carry a second tent: big %d small %d", len(big.Items), len(small.Items))
	}
}

func TestDegradeDailyWearsWholeKit(t *testing.T) {
	kit := StartingKit(2, DifficultyNormal)
	kit.DegradeDaily(WeatherStorm)
	for _, item := range kit.Items {
		if item.Durability >= item.MaxDurability {
			t.Fatalf("%s did not wear", item.Kind.Name())
		}
	}
}
