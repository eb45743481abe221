package service

import (
	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/model/entity"
)

// 成本全部用 float64（越南盾金额），乘加不做舍入，与存储列一致。

// LaminationCoreCost 方形铁芯段成本：硅钢片重量×单价 + 骨架固定价
func LaminationCoreCost(weightKg, pricePerKg, corePrice float64) float64 {
	return weightKg*pricePerKg + corePrice
}

// RoundCoreCost 圆形铁芯成本：重量×单价
func RoundCoreCost(weightKg, pricePerKg float64) float64 {
	return weightKg * pricePerKg
}

// WindingCost 线圈成本：重量×线材单价
func WindingCost(weightKg, specPricePerKg float64) float64 {
	return weightKg * specPricePerKg
}

// AccessoryCost 配件成本：数量×单价
func AccessoryCost(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// TotalCost 整机总成本：铁芯段 + 全部线圈 + 全部配件
func TotalCost(coreCost float64, windingCosts, accessoryCosts []float64) float64 {
	total := coreCost
	for _, c := range windingCosts {
		total += c
	}
	for _, c := range accessoryCosts {
		total += c
	}
	return total
}

// ValidateWindingComposition 校验线圈组成：必须恰好一条 primary、一条 secondary。
// 角色按请求逐条声明的 Role 统计，与线材目录声明的类型无关。
// 空列表按 0/0 计，同样不通过。
func ValidateWindingComposition(windings []WindingUsageRequest) error {
	var primary, secondary int
	for _, w := range windings {
		switch w.Role {
		case entity.WindingRolePrimary:
			primary++
		case entity.WindingRoleSecondary:
			secondary++
		}
	}
	if primary != 1 || secondary != 1 {
		return NewValidationError(
			"winding composition requires exactly one primary and one secondary winding, got %d primary and %d secondary",
			primary, secondary)
	}
	return nil
}
