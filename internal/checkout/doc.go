// Package checkout предварительная сверка остатков заказа и машина состояний
// отправки вокруг неё. Нехватка товара исправима: покупатель либо заказывает
// то, что есть, либо возвращается в корзину.
package checkout
